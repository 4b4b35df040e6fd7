package conversationRepo

import (
	"context"

	"wayfare/models"
)

// ConversationRepository defines methods for conversation state access.
type ConversationRepository interface {
	// Get retrieves a conversation by session ID. Returns (nil, nil) when no
	// record exists.
	Get(ctx context.Context, sessionID string) (*models.ConversationState, error)
	// Upsert writes the conversation state keyed by session ID.
	Upsert(ctx context.Context, state *models.ConversationState) error
	// Delete removes a conversation record.
	Delete(ctx context.Context, sessionID string) error
}
