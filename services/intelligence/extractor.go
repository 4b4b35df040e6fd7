package intelligence

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"wayfare/models"
	"wayfare/utils"

	"go.uber.org/zap"
)

const extractPromptHeader = `You extract structured travel plans from a conversation.
Reply with a single JSON object and nothing else. Schema:
{
  "intent": "SEARCH" | "HELP" | "SMALL_TALK" | "TRIP",
  "listingTypes": ["HOMES" and/or "HOTELS"],
  "location": {"city": "", "state": "", "country": "", "address": "", "lat": 0, "lon": 0},
  "dates": {"checkIn": "YYYY-MM-DD", "checkOut": "YYYY-MM-DD", "flexible": false, "originalText": ""},
  "guests": {"adults": 0, "children": 0, "childrenAges": []},
  "preferences": {"amenities": [], "areas": [], "cancellationPolicy": "", "propertyType": []},
  "budget": {"min": 0, "max": 0, "currency": ""},
  "sortBy": "", "limit": 0, "language": "", "notes": []
}
Omit every field the user did not mention. Conversation:`

// DefaultPlanExtractor extracts plans through Gemini.
type DefaultPlanExtractor struct {
	Client  *GeminiClient
	Timeout time.Duration
}

func NewDefaultPlanExtractor(client *GeminiClient) *DefaultPlanExtractor {
	return &DefaultPlanExtractor{Client: client, Timeout: 8 * time.Second}
}

// Extract tolerates empty input and malformed model output; both degrade to
// the default small-talk plan.
func (e *DefaultPlanExtractor) Extract(ctx context.Context, messages []models.ChatMessage) *models.Plan {
	logger := utils.GetLogger()
	if len(messages) == 0 || e.Client == nil {
		return models.DefaultPlan()
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(extractPromptHeader)
	for _, m := range messages {
		sb.WriteString("\n")
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
	}

	raw, err := e.Client.GenerateContent(ctx, sb.String())
	if err != nil {
		logger.Warn("plan extraction failed, using default plan", zap.Error(err))
		return models.DefaultPlan()
	}

	plan, err := parsePlanJSON(raw)
	if err != nil {
		logger.Warn("plan extraction returned unparseable output", zap.Error(err))
		return models.DefaultPlan()
	}
	return plan
}

// parsePlanJSON decodes a model answer into a plan, tolerating markdown
// fences around the JSON body. An unknown intent falls back to SMALL_TALK.
func parsePlanJSON(raw string) (*models.Plan, error) {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)

	var plan models.Plan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return nil, err
	}
	switch plan.Intent {
	case models.IntentSearch, models.IntentHelp, models.IntentSmallTalk, models.IntentTrip:
	default:
		plan.Intent = models.IntentSmallTalk
	}
	return &plan, nil
}
