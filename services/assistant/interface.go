package assistant

import (
	"context"

	"wayfare/models"
	"wayfare/services/geo"
	"wayfare/services/intelligence"
	"wayfare/services/inventory"
	"wayfare/services/news"
	recsService "wayfare/services/recs"
	"wayfare/services/state"
	"wayfare/services/weather"

	"github.com/hibiken/asynq"
)

// Service runs one full assistant turn.
type Service interface {
	// ProcessTurn loads the conversation, interprets the latest input,
	// dispatches the resulting action and persists the updated state.
	ProcessTurn(ctx context.Context, input models.TurnInput) (*models.TurnResult, error)
	// ResetConversation drops the stored state for a session the user owns.
	ResetConversation(ctx context.Context, sessionID, userID string) error
}

// DefaultAssistantService is the production turn orchestrator.
type DefaultAssistantService struct {
	Store      state.Store
	Extractor  intelligence.PlanExtractor
	Renderer   *Renderer
	Inventory  inventory.SearchService
	Geo        geo.Geocoder
	Recs       recsService.Service
	News       news.Provider
	Weather    weather.Service
	Classifier Classifier

	// Queue is optional; when set, trip turns schedule a background delta
	// pack refresh for the visited zone.
	Queue *asynq.Client

	DefaultRadiusKm float64
	DefaultLanguage string
	ResultsPerKind  int
}

var _ Service = (*DefaultAssistantService)(nil)
