package stayRepo

import (
	"context"

	"wayfare/models"
)

// StaySearchCriteria defines criteria for an inventory search.
type StaySearchCriteria struct {
	Kind          string
	City          string
	Country       string
	LocationGeo   models.GeoPoint
	MaxDistanceKm float64
	MinGuests     int
	MinBedrooms   int
	MinStars      int
	PriceMin      *float64
	PriceMax      *float64
	Amenities     []string
	PropertyTypes []string
	ExcludeIDs    []string
	Limit         int
}

// StayRepository defines methods for inventory data access.
type StayRepository interface {
	// GetByID retrieves a stay by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Stay, error)
	// Search performs a filtered, optionally geo-anchored inventory search.
	Search(ctx context.Context, criteria StaySearchCriteria) ([]models.Stay, error)
}
