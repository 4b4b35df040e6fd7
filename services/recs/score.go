package recs

import (
	"math"
	"sort"

	"wayfare/models"
	"wayfare/services/weather"
)

const (
	defaultPerGroup = 5
	defaultMaxTotal = 24
)

// scorePlace is the pure ranking function applied at assembly time. It is
// deterministic for identical inputs: rating and review volume push a place
// up, distance pulls it down, the delta overlay boosts open places and
// penalizes closed ones, a time-of-day tag match rewards category fit, and
// outdoor categories lose ground in rain.
func scorePlace(item models.PlaceItem, meta categoryMeta, delta *models.DeltaPack, bucket string) float64 {
	score := item.Rating * 2
	score += math.Log10(float64(item.RatingCount + 1))
	score -= item.DistanceKm * 0.3

	if delta != nil {
		if open, ok := delta.OpenNow[item.PlaceID]; ok {
			if open {
				score += 1.5
			} else {
				score -= 1.0
			}
		}
		if meta.Outdoor && delta.Weather != nil && weather.IsRainy(delta.Weather.Current.WeatherCode) {
			score -= 1.5
		}
	}

	for _, tag := range meta.TimeTags {
		if tag == bucket {
			score += 1.0
			break
		}
	}
	return score
}

// AssembleRecommendations merges a base pack with its delta overlay and
// returns the top scored places per category, capped globally with a
// proportional trim across categories.
func AssembleRecommendations(base *models.BasePack, delta *models.DeltaPack, bucket string, perGroup, maxTotal int) []models.PlaceGroup {
	if base == nil || len(base.Groups) == 0 {
		return nil
	}
	if perGroup <= 0 {
		perGroup = defaultPerGroup
	}
	if maxTotal <= 0 {
		maxTotal = defaultMaxTotal
	}

	groups := make([]models.PlaceGroup, 0, len(base.Groups))
	total := 0
	for _, g := range base.Groups {
		meta := categoriesByID[g.ID]
		items := make([]models.PlaceItem, len(g.Items))
		copy(items, g.Items)

		// Stable sort with a name tiebreak keeps assembly deterministic.
		sort.SliceStable(items, func(i, j int) bool {
			si := scorePlace(items[i], meta, delta, bucket)
			sj := scorePlace(items[j], meta, delta, bucket)
			if si != sj {
				return si > sj
			}
			return items[i].Name < items[j].Name
		})
		if len(items) > perGroup {
			items = items[:perGroup]
		}
		if delta != nil {
			for i := range items {
				if open, ok := delta.OpenNow[items[i].PlaceID]; ok {
					o := open
					items[i].OpenNow = &o
				}
			}
		}

		out := g
		out.Items = items
		groups = append(groups, out)
		total += len(items)
	}

	if total <= maxTotal {
		return groups
	}

	// Proportional trim: every category keeps at least one pick, the rest
	// shrink in proportion to their share of the overflow.
	ratio := float64(maxTotal) / float64(total)
	kept := 0
	for i := range groups {
		keep := int(math.Floor(float64(len(groups[i].Items)) * ratio))
		if keep < 1 {
			keep = 1
		}
		groups[i].Items = groups[i].Items[:keep]
		kept += keep
	}
	// Drop one item at a time from the largest groups until under the cap.
	for kept > maxTotal {
		largest := 0
		for i := range groups {
			if len(groups[i].Items) > len(groups[largest].Items) {
				largest = i
			}
		}
		if len(groups[largest].Items) <= 1 {
			break
		}
		groups[largest].Items = groups[largest].Items[:len(groups[largest].Items)-1]
		kept--
	}
	return groups
}
