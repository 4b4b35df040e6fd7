package intelligence

import (
	"context"

	"wayfare/models"
)

// PlanExtractor turns raw message history into a structured travel plan.
// Implementations never fail: malformed model output and empty input both
// fall back to the default small-talk plan.
type PlanExtractor interface {
	Extract(ctx context.Context, messages []models.ChatMessage) *models.Plan
}

// ReplyRequest carries everything the reply generator may ground on.
type ReplyRequest struct {
	Plan      *models.Plan
	Messages  []models.ChatMessage
	Inventory *models.Inventory
	Trip      *models.TripContext
	Language  string
}

// ReplyResult is the generated reply plus clickable follow-up suggestions.
type ReplyResult struct {
	Reply     string
	FollowUps []string
}

// ReplyGenerator produces the natural-language reply for a turn.
type ReplyGenerator interface {
	Generate(ctx context.Context, req ReplyRequest) (*ReplyResult, error)
}
