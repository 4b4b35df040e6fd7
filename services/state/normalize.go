package state

import (
	"math"
	"time"

	"wayfare/config"
	"wayfare/models"
)

// fallbackCurrency returns the configured currency code used when a budget
// carries none, defaulting to USD before config is loaded.
func fallbackCurrency() string {
	if c := config.AppConfig.DefaultCurrency; c != "" {
		return c
	}
	return "USD"
}

var validStages = map[models.Stage]bool{
	models.StageNeedDestination: true,
	models.StageNeedDates:       true,
	models.StageNeedGuests:      true,
	models.StageShowResults:     true,
	models.StageDetails:         true,
	models.StageQuote:           true,
	models.StageReadyToBook:     true,
	models.StageBooked:          true,
	models.StageTripAssist:      true,
}

var validSorts = map[string]bool{
	models.SortRecommended: true,
	models.SortPriceAsc:    true,
	models.SortPriceDesc:   true,
	models.SortRating:      true,
}

// DefaultState returns the canonical empty conversation state.
func DefaultState(sessionID, userID string) *models.ConversationState {
	return &models.ConversationState{
		SessionID: sessionID,
		UserID:    userID,
		Stage:     models.StageNeedDestination,
		Budget:    models.Budget{Currency: fallbackCurrency()},
	}
}

// Normalize returns a fully-populated, type-correct state for any input,
// including nil. Out-of-range or malformed fields are coerced to their zero
// value rather than rejected. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw *models.ConversationState) *models.ConversationState {
	if raw == nil {
		return DefaultState("", "")
	}
	s := *raw

	if !validStages[s.Stage] {
		s.Stage = models.StageNeedDestination
	}

	s.Destination.Lat = sanitizeLat(s.Destination.Lat)
	s.Destination.Lon = sanitizeLon(s.Destination.Lon)
	if s.Destination.Confidence < 0 || math.IsNaN(s.Destination.Confidence) {
		s.Destination.Confidence = 0
	} else if s.Destination.Confidence > 1 {
		s.Destination.Confidence = 1
	}
	if len(s.Destination.BBox) != 4 {
		s.Destination.BBox = nil
	}

	s.Dates.CheckIn = sanitizeDate(s.Dates.CheckIn)
	s.Dates.CheckOut = sanitizeDate(s.Dates.CheckOut)

	if s.Guests.Adults < 0 {
		s.Guests.Adults = 0
	}
	if s.Guests.Children < 0 {
		s.Guests.Children = 0
	}
	s.Guests.ChildrenAges = sanitizeAges(s.Guests.ChildrenAges)

	s.Budget.Min = sanitizeAmount(s.Budget.Min)
	s.Budget.Max = sanitizeAmount(s.Budget.Max)
	if s.Budget.Currency == "" {
		s.Budget.Currency = fallbackCurrency()
	}

	s.Preferences.Amenities = dedupe(s.Preferences.Amenities)
	s.Preferences.Areas = dedupe(s.Preferences.Areas)
	s.Preferences.PropertyType = dedupe(s.Preferences.PropertyType)
	s.Preferences.ListingTypes = sanitizeListingTypes(s.Preferences.ListingTypes)
	if !validSorts[s.Preferences.SortBy] {
		s.Preferences.SortBy = ""
	}

	if s.Trip != nil {
		// Copy before sanitizing; the shallow state copy still aliases
		// the caller's TripContext.
		trip := *s.Trip
		trip.Location.Lat = sanitizeLat(trip.Location.Lat)
		trip.Location.Lng = sanitizeLon(trip.Location.Lng)
		if trip.RadiusKm < 0 || math.IsNaN(trip.RadiusKm) {
			trip.RadiusKm = 0
		}
		trip.Dates.CheckIn = sanitizeDate(trip.Dates.CheckIn)
		trip.Dates.CheckOut = sanitizeDate(trip.Dates.CheckOut)
		if trip.Guests < 0 {
			trip.Guests = 0
		}
		s.Trip = &trip
	}

	return &s
}

func sanitizeLat(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < -90 || *v > 90 {
		return nil
	}
	return v
}

func sanitizeLon(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < -180 || *v > 180 {
		return nil
	}
	return v
}

func sanitizeAmount(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return nil
	}
	return v
}

func sanitizeDate(v string) string {
	if v == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return ""
	}
	return v
}

func sanitizeAges(ages []int) []int {
	if len(ages) == 0 {
		return nil
	}
	out := make([]int, 0, len(ages))
	for _, a := range ages {
		if a >= 0 && a < 18 {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sanitizeListingTypes(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, 0, len(types))
	seen := map[string]bool{}
	for _, t := range types {
		if (t == models.ListingHomes || t == models.ListingHotels) && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, v := range in {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
