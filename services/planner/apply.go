package planner

import (
	"strings"

	"wayfare/models"
)

// ApplyPlanToState projects the merged plan onto the flatter conversation
// state. The projection is one-directional: it never reads plan fields back
// out of the state, so repeated application cannot feed on itself.
func ApplyPlanToState(st *models.ConversationState, plan *models.Plan) {
	if st == nil || plan == nil {
		return
	}

	if loc := plan.Location; loc != nil {
		if label := locationLabel(loc); label != "" {
			st.Destination.Name = label
		}
		if loc.Lat != nil {
			st.Destination.Lat = loc.Lat
		}
		if loc.Lon != nil {
			st.Destination.Lon = loc.Lon
		}
	}

	if d := plan.Dates; d != nil {
		if d.CheckIn != "" {
			st.Dates.CheckIn = d.CheckIn
		}
		if d.CheckOut != "" {
			st.Dates.CheckOut = d.CheckOut
		}
		if d.Flexible {
			st.Dates.Flexible = true
		}
		if d.OriginalText != "" {
			st.Dates.OriginalText = d.OriginalText
		}
	}

	if g := plan.Guests; g != nil {
		if g.Adults > 0 {
			st.Guests.Adults = g.Adults
		}
		if g.Children > 0 {
			st.Guests.Children = g.Children
		}
		if len(g.ChildrenAges) > 0 {
			st.Guests.ChildrenAges = g.ChildrenAges
		}
	}

	if b := plan.Budget; b != nil {
		if b.Min != nil {
			st.Budget.Min = b.Min
		}
		if b.Max != nil {
			st.Budget.Max = b.Max
		}
		if b.Currency != "" {
			st.Budget.Currency = b.Currency
		}
	}

	if p := plan.Preferences; p != nil {
		if len(p.Amenities) > 0 {
			st.Preferences.Amenities = p.Amenities
		}
		if len(p.Areas) > 0 {
			st.Preferences.Areas = p.Areas
		}
		if p.CancellationPolicy != "" {
			st.Preferences.CancellationPolicy = p.CancellationPolicy
		}
		if len(p.PropertyType) > 0 {
			st.Preferences.PropertyType = p.PropertyType
		}
	}

	if len(plan.ListingTypes) > 0 {
		st.Preferences.ListingTypes = plan.ListingTypes
	}
	if plan.SortBy != "" {
		st.Preferences.SortBy = plan.SortBy
	}
}

// locationLabel joins the known location parts into a display label,
// e.g. "Miami, Florida, United States".
func locationLabel(loc *models.PlanLocation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.State, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
