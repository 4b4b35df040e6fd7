package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"wayfare/models"
	geoService "wayfare/services/geo"
	"wayfare/services/inventory"
	recsService "wayfare/services/recs"
	"wayfare/services/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// fakeStore keeps states in memory and records saves.
type fakeStore struct {
	states map[string]*models.ConversationState
	saved  *models.ConversationState
	loads  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[string]*models.ConversationState{}}
}

func (f *fakeStore) Load(ctx context.Context, sessionID, userID string) (*models.ConversationState, error) {
	f.loads++
	if st, ok := f.states[sessionID]; ok && st.UserID == userID {
		return state.Normalize(st), nil
	}
	return state.DefaultState(sessionID, userID), nil
}

func (f *fakeStore) Save(ctx context.Context, st *models.ConversationState) error {
	f.saved = st
	f.states[st.SessionID] = st
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, sessionID, userID string) (bool, error) {
	st, ok := f.states[sessionID]
	return ok && st.UserID == userID, nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	delete(f.states, sessionID)
	return nil
}

// fakeExtractor returns a fixed plan for every turn.
type fakeExtractor struct {
	plan *models.Plan
}

func (f *fakeExtractor) Extract(ctx context.Context, messages []models.ChatMessage) *models.Plan {
	if f.plan == nil {
		return models.DefaultPlan()
	}
	return f.plan
}

// fakeInventory returns a fixed result or error.
type fakeInventory struct {
	inv    *models.Inventory
	err    error
	limits inventory.SearchLimits
}

func (f *fakeInventory) Search(ctx context.Context, plan *models.Plan, st *models.ConversationState, limits inventory.SearchLimits) (*models.Inventory, error) {
	f.limits = limits
	if f.err != nil {
		return nil, f.err
	}
	return f.inv, nil
}

// fakeRecs returns a fixed recommendation result.
type fakeRecs struct {
	result *recsService.Result
	calls  int
}

func (f *fakeRecs) Recommendations(ctx context.Context, loc models.LatLng, timezone string, radiusKm float64, now time.Time) (*recsService.Result, error) {
	f.calls++
	return f.result, nil
}

func (f *fakeRecs) RefreshDelta(ctx context.Context, loc models.LatLng, timezone string, now time.Time) error {
	return nil
}

// fakeGeocoder resolves every query to a fixed point.
type fakeGeocoder struct {
	result *geoService.Result
}

func (f *fakeGeocoder) Geocode(ctx context.Context, text string) (*geoService.Result, error) {
	return f.result, nil
}

func newTestService(store *fakeStore, extractor *fakeExtractor, inv *fakeInventory) *DefaultAssistantService {
	return &DefaultAssistantService{
		Store:           store,
		Extractor:       extractor,
		Renderer:        &Renderer{DefaultLanguage: "en"},
		Inventory:       inv,
		Classifier:      KeywordClassifier{},
		DefaultLanguage: "en",
	}
}

func userTurn(session, text string) models.TurnInput {
	return models.TurnInput{
		SessionID: session,
		UserID:    "u1",
		Messages:  []models.ChatMessage{{Role: "user", Content: text}},
	}
}

func TestProcessTurnRejectsEmptyInput(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})

	_, err := svc.ProcessTurn(context.Background(), models.TurnInput{
		SessionID: "s1", UserID: "u1",
	})
	assert.ErrorIs(t, err, ErrEmptyTurnInput)
	// Rejected before any load or mutation.
	assert.Zero(t, store.loads)
	assert.Nil(t, store.saved)
}

func TestProcessTurnSearchWithDegradedInventory(t *testing.T) {
	store := newFakeStore()
	extractor := &fakeExtractor{plan: &models.Plan{
		Intent:       models.IntentSearch,
		Location:     &models.PlanLocation{City: "Miami"},
		Guests:       &models.PlanGuests{Adults: 2},
		ListingTypes: []string{models.ListingHotels},
	}}
	inv := &fakeInventory{err: errors.New("mongo unreachable")}
	svc := newTestService(store, extractor, inv)

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "hotels in Miami for 2 adults"))
	require.NoError(t, err)

	assert.Equal(t, models.IntentSearch, result.Intent)
	assert.Equal(t, models.ActionRunSearch, result.NextAction)
	assert.NotEmpty(t, result.Assistant.Text)
	require.NotNil(t, result.Inventory)
	assert.Empty(t, result.Inventory.Hotels)
	assert.Empty(t, result.Inventory.Homes)
	assert.Equal(t, models.StageShowResults, result.Stage)

	// The accumulated slots survive the provider failure.
	require.NotNil(t, store.saved)
	assert.Equal(t, "Miami", store.saved.Destination.Name)
	assert.Equal(t, 2, store.saved.Guests.Adults)
	// No results were shown, so nothing is recorded for "show more".
	assert.Empty(t, store.saved.LastResults.LastSearchID)
}

func TestProcessTurnSearchRecordsShownResults(t *testing.T) {
	store := newFakeStore()
	extractor := &fakeExtractor{plan: &models.Plan{
		Intent:   models.IntentSearch,
		Location: &models.PlanLocation{City: "Miami"},
	}}
	inv := &fakeInventory{inv: &models.Inventory{
		Hotels: []models.StayCard{{ID: "h1", Name: "Bayfront"}, {ID: "h2", Name: "Seaside"}},
		Homes:  []models.StayCard{},
	}}
	svc := newTestService(store, extractor, inv)

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "hotels in Miami"))
	require.NoError(t, err)

	assert.Len(t, result.UI.Cards, 2)
	require.NotNil(t, store.saved)
	assert.NotEmpty(t, store.saved.LastResults.LastSearchID)
	assert.ElementsMatch(t, []string{"h1", "h2"}, store.saved.LastResults.ShownIDs)
}

func TestProcessTurnShowMoreExcludesShownIDs(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{
		SessionID:   "s1",
		UserID:      "u1",
		Destination: models.Destination{Name: "Miami"},
		LastResults: models.ResultsContext{LastSearchID: "prev", ShownIDs: []string{"h1", "h2"}},
	}
	inv := &fakeInventory{inv: &models.Inventory{
		Hotels: []models.StayCard{{ID: "h3"}},
		Homes:  []models.StayCard{},
	}}
	svc := newTestService(store, &fakeExtractor{}, inv)

	input := userTurn("s1", "show me more")
	input.UIEvent = "SHOW_MORE"
	result, err := svc.ProcessTurn(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.ActionRunSearch, result.NextAction)
	assert.ElementsMatch(t, []string{"h1", "h2"}, inv.limits.ExcludeIDs)
	// Newly shown ids accumulate behind the previous ones.
	assert.Equal(t, []string{"h1", "h2", "h3"}, store.saved.LastResults.ShownIDs)
}

func TestProcessTurnClarifyingTurn(t *testing.T) {
	store := newFakeStore()
	extractor := &fakeExtractor{plan: &models.Plan{Intent: models.IntentSearch}}
	svc := newTestService(store, extractor, &fakeInventory{})

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "I need somewhere to stay"))
	require.NoError(t, err)

	assert.Equal(t, models.ActionAskForDestination, result.NextAction)
	assert.Equal(t, "Where would you like to go?", result.Assistant.Text)
	assert.Equal(t, models.StageNeedDestination, result.Stage)
	require.Len(t, result.UI.Inputs, 1)
	assert.Equal(t, "destination", result.UI.Inputs[0].ID)
}

func TestProcessTurnBookingLockDowngradesSearch(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{
		SessionID:   "s1",
		UserID:      "u1",
		Destination: models.Destination{Name: "Miami"},
		Locks:       models.Locks{BookingFlowLocked: true},
	}
	extractor := &fakeExtractor{plan: &models.Plan{
		Intent:   models.IntentSearch,
		Location: &models.PlanLocation{City: "Lisbon"},
	}}
	inv := &fakeInventory{}
	svc := newTestService(store, extractor, inv)

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "actually find hotels in Lisbon"))
	require.NoError(t, err)

	assert.Equal(t, models.IntentHelp, result.Intent)
	assert.Equal(t, models.ActionHelp, result.NextAction)
	assert.Equal(t, "BOOKING_LOCKED", result.PolicyNotice)
	assert.Nil(t, result.Inventory)
	require.Len(t, result.Assistant.Disclaimers, 1)
	// The plan still accumulated; only execution was blocked.
	assert.Equal(t, "Lisbon", store.saved.Destination.Name)
}

func TestProcessTurnSortChipTriggersSearch(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{
		SessionID:   "s1",
		UserID:      "u1",
		Destination: models.Destination{Name: "Miami"},
	}
	inv := &fakeInventory{inv: &models.Inventory{
		Hotels: []models.StayCard{{ID: "h1"}},
		Homes:  []models.StayCard{},
	}}
	svc := newTestService(store, &fakeExtractor{}, inv)

	input := userTurn("s1", "cheapest first")
	input.UIEvent = "SORT_PRICE_ASC"
	result, err := svc.ProcessTurn(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.IntentSearch, result.Intent)
	assert.Equal(t, models.ActionRunSearch, result.NextAction)
	assert.Equal(t, models.SortPriceAsc, store.saved.Preferences.SortBy)
}

func TestProcessTurnTripAssist(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{
		SessionID: "s1",
		UserID:    "u1",
		Destination: models.Destination{
			Name: "Miami", Lat: floatPtr(25.76), Lon: floatPtr(-80.19),
			Timezone: "America/New_York",
		},
	}
	recs := &fakeRecs{result: &recsService.Result{
		Cell:   "g5:1:1",
		Bucket: models.BucketEvening,
		Groups: []models.PlaceGroup{
			{ID: "restaurants", Title: "Restaurants", Items: []models.PlaceItem{
				{PlaceID: "a", Name: "Trattoria"},
			}},
		},
		Weather: &models.WeatherSummary{Current: models.CurrentWeather{TemperatureC: 28}},
	}}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})
	svc.Recs = recs

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "things to do near me tonight"))
	require.NoError(t, err)

	assert.Equal(t, models.IntentTrip, result.Intent)
	assert.Equal(t, models.ActionRunTrip, result.NextAction)
	assert.Equal(t, models.StageTripAssist, result.Stage)
	assert.Equal(t, 1, recs.calls)
	require.NotNil(t, result.Weather)
	assert.Equal(t, 28.0, result.Weather.Current.TemperatureC)
	require.Len(t, result.UI.Sections, 1)
	assert.Nil(t, result.Itinerary)
}

func TestProcessTurnItineraryRequest(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{
		SessionID:   "s1",
		UserID:      "u1",
		Destination: models.Destination{Lat: floatPtr(25.76), Lon: floatPtr(-80.19)},
	}
	recs := &fakeRecs{result: &recsService.Result{
		Groups: []models.PlaceGroup{
			{ID: "restaurants", Items: []models.PlaceItem{
				{PlaceID: "a", Name: "A"}, {PlaceID: "b", Name: "B"}, {PlaceID: "c", Name: "C"},
			}},
		},
	}}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})
	svc.Recs = recs

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "plan a 2 day itinerary"))
	require.NoError(t, err)

	require.NotNil(t, result.Itinerary)
	assert.Len(t, result.Itinerary.Days, 2)
}

func TestProcessTurnTripWithoutLocationFallsThrough(t *testing.T) {
	// No destination, no trip context, no ambient location: the heuristic
	// trip signal cannot resolve a place, so the planner's verdict stands.
	store := newFakeStore()
	recs := &fakeRecs{result: &recsService.Result{}}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})
	svc.Recs = recs

	result, err := svc.ProcessTurn(context.Background(), userTurn("s1", "things to do near me"))
	require.NoError(t, err)

	assert.NotEqual(t, models.ActionRunTrip, result.NextAction)
	assert.Zero(t, recs.calls)
}

func TestProcessTurnTripUsesAmbientLocation(t *testing.T) {
	store := newFakeStore()
	recs := &fakeRecs{result: &recsService.Result{
		Groups: []models.PlaceGroup{{ID: "parks", Items: []models.PlaceItem{{PlaceID: "p"}}}},
	}}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})
	svc.Recs = recs

	input := userTurn("s1", "what can i do around here")
	input.Ambient = &models.LatLng{Lat: 48.85, Lon: 2.35}
	result, err := svc.ProcessTurn(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.ActionRunTrip, result.NextAction)
	assert.Equal(t, 1, recs.calls)
}

func TestProcessTurnTripGeocodesTripContext(t *testing.T) {
	store := newFakeStore()
	recs := &fakeRecs{result: &recsService.Result{
		Groups: []models.PlaceGroup{{ID: "parks", Items: []models.PlaceItem{{PlaceID: "p"}}}},
	}}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})
	svc.Recs = recs
	svc.Geo = &fakeGeocoder{result: &geoService.Result{
		Name: "Lisbon", Lat: 38.72, Lon: -9.14, Timezone: "Europe/Lisbon",
	}}

	input := userTurn("s1", "things to do nearby")
	input.Trip = &models.TripContext{LocationText: "Lisbon, Portugal"}
	result, err := svc.ProcessTurn(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.ActionRunTrip, result.NextAction)
	require.NotNil(t, store.saved.Trip)
	assert.Equal(t, "Lisbon, Portugal", store.saved.Trip.LocationText)
}

func TestResetConversation(t *testing.T) {
	store := newFakeStore()
	store.states["s1"] = &models.ConversationState{SessionID: "s1", UserID: "u1"}
	svc := newTestService(store, &fakeExtractor{}, &fakeInventory{})

	err := svc.ResetConversation(context.Background(), "s1", "someone-else")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, stillThere := store.states["s1"]
	assert.True(t, stillThere)

	err = svc.ResetConversation(context.Background(), "s1", "u1")
	require.NoError(t, err)
	_, stillThere = store.states["s1"]
	assert.False(t, stillThere)
}
