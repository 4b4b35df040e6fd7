package assistant

import "wayfare/models"

var itinerarySlots = []string{
	models.BucketMorning,
	models.BucketAfternoon,
	models.BucketEvening,
}

// BuildItinerary synthesizes a short day plan from the recommendation
// groups. Picks are drawn round-robin across categories so each day mixes
// interests, and a place is never used twice.
func BuildItinerary(groups []models.PlaceGroup, days int) *models.TripPlan {
	if len(groups) == 0 {
		return nil
	}
	if days < 1 {
		days = 1
	}
	if days > 3 {
		days = 3
	}

	// Interleave: first pick of every category, then second picks, and so on.
	var picks []models.PlaceItem
	for depth := 0; ; depth++ {
		added := false
		for _, g := range groups {
			if depth < len(g.Items) {
				picks = append(picks, g.Items[depth])
				added = true
			}
		}
		if !added {
			break
		}
	}
	if len(picks) == 0 {
		return nil
	}

	plan := &models.TripPlan{}
	next := 0
	for day := 1; day <= days; day++ {
		td := models.TripDay{Day: day}
		for _, slot := range itinerarySlots {
			if next >= len(picks) {
				break
			}
			td.Slots = append(td.Slots, models.TripSlot{TimeOfDay: slot, Place: picks[next]})
			next++
		}
		if len(td.Slots) == 0 {
			break
		}
		plan.Days = append(plan.Days, td)
	}
	if len(plan.Days) == 0 {
		return nil
	}
	return plan
}
