package stayRepo

import (
	"context"
	"errors"
	"fmt"

	"wayfare/database"
	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "stays"

// MongoStayRepo implements StayRepository backed by MongoDB.
type MongoStayRepo struct {
	coll *mongo.Collection
}

// NewMongoStayRepo returns a repo bound to the stays collection.
func NewMongoStayRepo() *MongoStayRepo {
	return &MongoStayRepo{coll: database.Collection(collectionName)}
}

// EnsureIndexes creates the 2dsphere and filter indexes.
func (r *MongoStayRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "city", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create stay indexes: %w", err)
	}
	return nil
}

func (r *MongoStayRepo) GetByID(ctx context.Context, id string) (*models.Stay, error) {
	var stay models.Stay
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&stay)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stay %s: %w", id, err)
	}
	return &stay, nil
}

// Search runs an aggregation pipeline: $geoNear first when coordinates are
// available, then the attribute filters, sorted by rating and distance.
func (r *MongoStayRepo) Search(ctx context.Context, criteria StaySearchCriteria) ([]models.Stay, error) {
	var pipeline mongo.Pipeline

	geoAnchored := criteria.MaxDistanceKm > 0 && len(criteria.LocationGeo.Coordinates) == 2
	if geoAnchored {
		pipeline = append(pipeline, bson.D{
			{Key: "$geoNear", Value: bson.D{
				{Key: "near", Value: bson.D{
					{Key: "type", Value: "Point"},
					{Key: "coordinates", Value: criteria.LocationGeo.Coordinates},
				}},
				{Key: "distanceField", Value: "distance"},
				{Key: "spherical", Value: true},
				{Key: "maxDistance", Value: criteria.MaxDistanceKm * 1000},
			}},
		})
	}

	matchFilter := bson.M{}
	if criteria.Kind != "" {
		matchFilter["kind"] = criteria.Kind
	}
	if !geoAnchored && criteria.City != "" {
		matchFilter["city"] = bson.M{"$regex": criteria.City, "$options": "i"}
	}
	if !geoAnchored && criteria.Country != "" {
		matchFilter["country"] = bson.M{"$regex": criteria.Country, "$options": "i"}
	}
	if criteria.MinGuests > 0 {
		matchFilter["maxGuests"] = bson.M{"$gte": criteria.MinGuests}
	}
	if criteria.MinBedrooms > 0 {
		matchFilter["bedrooms"] = bson.M{"$gte": criteria.MinBedrooms}
	}
	if criteria.MinStars > 0 {
		matchFilter["stars"] = bson.M{"$gte": criteria.MinStars}
	}
	if criteria.PriceMin != nil || criteria.PriceMax != nil {
		price := bson.M{}
		if criteria.PriceMin != nil {
			price["$gte"] = *criteria.PriceMin
		}
		if criteria.PriceMax != nil {
			price["$lte"] = *criteria.PriceMax
		}
		matchFilter["pricePerNight"] = price
	}
	if len(criteria.Amenities) > 0 {
		matchFilter["amenities"] = bson.M{"$all": criteria.Amenities}
	}
	if len(criteria.PropertyTypes) > 0 {
		matchFilter["propertyType"] = bson.M{"$in": criteria.PropertyTypes}
	}
	if len(criteria.ExcludeIDs) > 0 {
		matchFilter["_id"] = bson.M{"$nin": criteria.ExcludeIDs}
	}
	if len(matchFilter) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})
	}

	sortSpec := bson.D{{Key: "rating", Value: -1}, {Key: "ratingCount", Value: -1}}
	if geoAnchored {
		sortSpec = append(bson.D{{Key: "distance", Value: 1}}, sortSpec...)
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sortSpec}})

	limit := criteria.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stay search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var stays []models.Stay
	if err := cursor.All(ctx, &stays); err != nil {
		return nil, fmt.Errorf("failed to decode stays: %w", err)
	}
	return stays, nil
}
