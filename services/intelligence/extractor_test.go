package intelligence

import (
	"context"
	"testing"

	"wayfare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanJSONPlainBody(t *testing.T) {
	plan, err := parsePlanJSON(`{"intent":"SEARCH","location":{"city":"Miami"},"guests":{"adults":2}}`)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSearch, plan.Intent)
	require.NotNil(t, plan.Location)
	assert.Equal(t, "Miami", plan.Location.City)
	assert.Equal(t, 2, plan.Guests.Adults)
}

func TestParsePlanJSONStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"intent\":\"TRIP\"}\n```"
	plan, err := parsePlanJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentTrip, plan.Intent)

	raw = "```\n{\"intent\":\"HELP\"}\n```"
	plan, err = parsePlanJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentHelp, plan.Intent)
}

func TestParsePlanJSONUnknownIntentFallsBack(t *testing.T) {
	plan, err := parsePlanJSON(`{"intent":"BOOK_NOW"}`)
	require.NoError(t, err)
	assert.Equal(t, models.IntentSmallTalk, plan.Intent)
}

func TestParsePlanJSONMalformed(t *testing.T) {
	_, err := parsePlanJSON("sure, here is the plan you asked for")
	assert.Error(t, err)
}

func TestExtractDegradesToDefaultPlan(t *testing.T) {
	e := NewDefaultPlanExtractor(nil)

	plan := e.Extract(context.Background(), nil)
	require.NotNil(t, plan)
	assert.Equal(t, models.IntentSmallTalk, plan.Intent)

	plan = e.Extract(context.Background(), []models.ChatMessage{{Role: "user", Content: "hi"}})
	require.NotNil(t, plan)
	assert.Equal(t, models.IntentSmallTalk, plan.Intent)
}
