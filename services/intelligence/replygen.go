package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const replyPromptHeader = `You are a concise, friendly travel assistant.
Ground your answer only on the context below. Reply with a single JSON object:
{"reply": "...", "followUps": ["...", "..."]}
Keep the reply under 80 words. Suggest at most 3 follow-ups.`

// DefaultReplyGenerator generates replies through Gemini.
type DefaultReplyGenerator struct {
	Client  *GeminiClient
	Timeout time.Duration
}

func NewDefaultReplyGenerator(client *GeminiClient) *DefaultReplyGenerator {
	return &DefaultReplyGenerator{Client: client, Timeout: 8 * time.Second}
}

func (g *DefaultReplyGenerator) Generate(ctx context.Context, req ReplyRequest) (*ReplyResult, error) {
	if g.Client == nil {
		return nil, fmt.Errorf("reply generator not configured")
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(replyPromptHeader)
	if req.Language != "" {
		sb.WriteString("\nAnswer in language: ")
		sb.WriteString(req.Language)
	}
	if req.Plan != nil {
		if data, err := json.Marshal(req.Plan); err == nil {
			sb.WriteString("\nPlan: ")
			sb.Write(data)
		}
	}
	if req.Inventory != nil {
		sb.WriteString(fmt.Sprintf("\nInventory: %d homes, %d hotels found.",
			len(req.Inventory.Homes), len(req.Inventory.Hotels)))
		for _, card := range append(req.Inventory.Homes, req.Inventory.Hotels...) {
			sb.WriteString(fmt.Sprintf("\n- %s (%s) %.0f %s/night, rating %.1f",
				card.Name, card.Kind, card.PricePerNight, card.Currency, card.Rating))
		}
	}
	if req.Trip != nil {
		sb.WriteString("\nActive trip: ")
		sb.WriteString(req.Trip.StayName)
		if req.Trip.LocationText != "" {
			sb.WriteString(" in ")
			sb.WriteString(req.Trip.LocationText)
		}
	}
	sb.WriteString("\nConversation:")
	for _, m := range req.Messages {
		sb.WriteString("\n")
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
	}

	raw, err := g.Client.GenerateContent(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	return parseReplyJSON(raw)
}

func parseReplyJSON(raw string) (*ReplyResult, error) {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)

	var out struct {
		Reply     string   `json:"reply"`
		FollowUps []string `json:"followUps"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		// Some answers come back as plain prose; use them as-is.
		if body != "" {
			return &ReplyResult{Reply: body}, nil
		}
		return nil, err
	}
	if out.Reply == "" {
		return nil, fmt.Errorf("reply generator returned empty reply")
	}
	return &ReplyResult{Reply: out.Reply, FollowUps: out.FollowUps}, nil
}

var _ PlanExtractor = (*DefaultPlanExtractor)(nil)
var _ ReplyGenerator = (*DefaultReplyGenerator)(nil)
