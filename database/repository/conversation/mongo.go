package conversationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wayfare/database"
	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "conversations"

// MongoConversationRepo implements ConversationRepository backed by MongoDB.
type MongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo returns a repo bound to the conversations collection.
func NewMongoConversationRepo() *MongoConversationRepo {
	return &MongoConversationRepo{coll: database.Collection(collectionName)}
}

// EnsureIndexes creates the session lookup index.
func (r *MongoConversationRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}
	return nil
}

func (r *MongoConversationRepo) Get(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	var state models.ConversationState
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", sessionID, err)
	}
	return &state, nil
}

func (r *MongoConversationRepo) Upsert(ctx context.Context, state *models.ConversationState) error {
	state.UpdatedAt = time.Now().UTC()
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"sessionId": state.SessionID},
		state,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert conversation %s: %w", state.SessionID, err)
	}
	return nil
}

func (r *MongoConversationRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", sessionID, err)
	}
	return nil
}
