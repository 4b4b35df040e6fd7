package inventory

import (
	"context"

	"wayfare/models"
)

// Match types reported per listing kind.
const (
	MatchExact   = "EXACT"
	MatchPartial = "PARTIAL"
	MatchNone    = "NONE"
)

// SearchLimits bounds one inventory search.
type SearchLimits struct {
	PerKind    int
	ExcludeIDs []string
}

// SearchService runs an inventory search for an accumulated plan and state.
type SearchService interface {
	Search(ctx context.Context, plan *models.Plan, st *models.ConversationState, limits SearchLimits) (*models.Inventory, error)
}
