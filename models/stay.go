package models

// GeoPoint is a GeoJSON point as stored in MongoDB (lon, lat order).
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Stay kinds stored in the inventory collection.
const (
	StayKindHome  = "HOME"
	StayKindHotel = "HOTEL"
)

// Stay is one bookable listing in the inventory collection.
type Stay struct {
	ID            string   `bson:"_id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Kind          string   `bson:"kind" json:"kind"`
	City          string   `bson:"city,omitempty" json:"city,omitempty"`
	Country       string   `bson:"country,omitempty" json:"country,omitempty"`
	LocationGeo   GeoPoint `bson:"locationGeo" json:"locationGeo"`
	PricePerNight float64  `bson:"pricePerNight" json:"pricePerNight"`
	Currency      string   `bson:"currency,omitempty" json:"currency,omitempty"`
	Rating        float64  `bson:"rating,omitempty" json:"rating,omitempty"`
	RatingCount   int      `bson:"ratingCount,omitempty" json:"ratingCount,omitempty"`
	MaxGuests     int      `bson:"maxGuests,omitempty" json:"maxGuests,omitempty"`
	Bedrooms      int      `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Stars         int      `bson:"stars,omitempty" json:"stars,omitempty"`
	Amenities     []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PropertyType  string   `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	PhotoURL      string   `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
}

// StayCard is the uniform UI projection of a stay.
type StayCard struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	City          string  `json:"city,omitempty"`
	Country       string  `json:"country,omitempty"`
	PricePerNight float64 `json:"pricePerNight"`
	Currency      string  `json:"currency,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	RatingCount   int     `json:"ratingCount,omitempty"`
	PhotoURL      string  `json:"photoUrl,omitempty"`
	DistanceKm    float64 `json:"distanceKm,omitempty"`
}

// Inventory is the inventory search result split by listing type.
type Inventory struct {
	Homes      []StayCard        `json:"homes"`
	Hotels     []StayCard        `json:"hotels"`
	MatchTypes map[string]string `json:"matchTypes,omitempty"`
}
