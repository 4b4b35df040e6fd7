package state

import (
	"math"
	"testing"

	"wayfare/config"
	"wayfare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeNilInput(t *testing.T) {
	st := Normalize(nil)
	require.NotNil(t, st)
	assert.Equal(t, models.StageNeedDestination, st.Stage)
	assert.Equal(t, "USD", st.Budget.Currency)
}

func TestNormalizeCoercesMalformedFields(t *testing.T) {
	raw := &models.ConversationState{
		SessionID: "s1",
		UserID:    "u1",
		Stage:     "NOT_A_STAGE",
		Destination: models.Destination{
			Lat:        floatPtr(123.0),
			Lon:        floatPtr(math.NaN()),
			Confidence: 4.2,
			BBox:       []float64{1, 2},
		},
		Dates:  models.StayDates{CheckIn: "tomorrow", CheckOut: "2026-09-12"},
		Guests: models.GuestCount{Adults: -1, Children: 2, ChildrenAges: []int{3, 44, -1}},
		Budget: models.Budget{Min: floatPtr(-50), Max: floatPtr(300)},
		Preferences: models.SearchPrefs{
			Amenities:    []string{"wifi", "wifi", ""},
			ListingTypes: []string{"HOTELS", "CASTLES", "HOTELS"},
			SortBy:       "CHEAPEST",
		},
	}

	st := Normalize(raw)

	assert.Equal(t, models.StageNeedDestination, st.Stage)
	assert.Nil(t, st.Destination.Lat)
	assert.Nil(t, st.Destination.Lon)
	assert.Equal(t, 1.0, st.Destination.Confidence)
	assert.Nil(t, st.Destination.BBox)
	assert.Empty(t, st.Dates.CheckIn)
	assert.Equal(t, "2026-09-12", st.Dates.CheckOut)
	assert.Equal(t, 0, st.Guests.Adults)
	assert.Equal(t, []int{3}, st.Guests.ChildrenAges)
	assert.Nil(t, st.Budget.Min)
	assert.Equal(t, 300.0, *st.Budget.Max)
	assert.Equal(t, "USD", st.Budget.Currency)
	assert.Equal(t, []string{"wifi"}, st.Preferences.Amenities)
	assert.Equal(t, []string{"HOTELS"}, st.Preferences.ListingTypes)
	assert.Empty(t, st.Preferences.SortBy)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := &models.ConversationState{
		SessionID: "s1",
		UserID:    "u1",
		Stage:     models.StageShowResults,
		Destination: models.Destination{
			Name: "Miami", Lat: floatPtr(25.76), Lon: floatPtr(-80.19), Confidence: 0.9,
		},
		Dates:  models.StayDates{CheckIn: "2026-09-10", CheckOut: "2026-09-12"},
		Guests: models.GuestCount{Adults: 2},
		Budget: models.Budget{Max: floatPtr(250), Currency: "EUR"},
		Trip: &models.TripContext{
			Location: models.TripLocation{Lat: floatPtr(25.76), Lng: floatPtr(-80.19)},
			RadiusKm: 5,
		},
	}

	once := Normalize(raw)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := &models.ConversationState{Stage: "BAD"}
	_ = Normalize(raw)
	assert.Equal(t, models.Stage("BAD"), raw.Stage)
}

func TestNormalizeDoesNotMutateTripContext(t *testing.T) {
	raw := &models.ConversationState{
		Trip: &models.TripContext{
			Location: models.TripLocation{Lat: floatPtr(123.0)},
			RadiusKm: -4,
			Guests:   -1,
			Dates:    models.StayDates{CheckIn: "someday"},
		},
	}

	st := Normalize(raw)

	require.NotSame(t, raw.Trip, st.Trip)
	assert.Nil(t, st.Trip.Location.Lat)
	assert.Equal(t, 0.0, st.Trip.RadiusKm)
	assert.Equal(t, 0, st.Trip.Guests)
	assert.Empty(t, st.Trip.Dates.CheckIn)

	assert.Equal(t, 123.0, *raw.Trip.Location.Lat)
	assert.Equal(t, -4.0, raw.Trip.RadiusKm)
	assert.Equal(t, -1, raw.Trip.Guests)
	assert.Equal(t, "someday", raw.Trip.Dates.CheckIn)
}

func TestNormalizeUsesConfiguredCurrency(t *testing.T) {
	config.AppConfig.DefaultCurrency = "EUR"
	defer func() { config.AppConfig.DefaultCurrency = "" }()

	st := Normalize(&models.ConversationState{})
	assert.Equal(t, "EUR", st.Budget.Currency)
	assert.Equal(t, "EUR", DefaultState("s", "u").Budget.Currency)
}

func TestDefaultState(t *testing.T) {
	st := DefaultState("sess", "user")
	assert.Equal(t, "sess", st.SessionID)
	assert.Equal(t, "user", st.UserID)
	assert.Equal(t, models.StageNeedDestination, st.Stage)
	assert.False(t, st.Locks.BookingFlowLocked)
}
