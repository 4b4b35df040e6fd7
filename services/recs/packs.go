package recs

import (
	"context"
	"sync"
	"time"

	"wayfare/models"
	"wayfare/utils"

	"go.uber.org/zap"
)

// categoryMeta describes one place category fetched into a base pack.
type categoryMeta struct {
	ID       string
	Title    string
	Category string
	Keyword  string
	Outdoor  bool
	TimeTags []string
}

var packCategories = []categoryMeta{
	{ID: "restaurants", Title: "Restaurants", Category: "restaurant", TimeTags: []string{models.BucketAfternoon, models.BucketEvening}},
	{ID: "cafes", Title: "Cafés & breakfast", Category: "cafe", TimeTags: []string{models.BucketMorning}},
	{ID: "attractions", Title: "Attractions", Category: "tourist_attraction", Outdoor: true, TimeTags: []string{models.BucketMorning, models.BucketAfternoon}},
	{ID: "museums", Title: "Museums & culture", Category: "museum", TimeTags: []string{models.BucketAfternoon}},
	{ID: "parks", Title: "Parks & outdoors", Category: "park", Outdoor: true, TimeTags: []string{models.BucketMorning, models.BucketAfternoon}},
	{ID: "nightlife", Title: "Nightlife", Category: "bar", TimeTags: []string{models.BucketEvening, models.BucketNight}},
	{ID: "shopping", Title: "Shopping", Category: "shopping_mall", TimeTags: []string{models.BucketAfternoon, models.BucketEvening}},
}

var categoriesByID = func() map[string]categoryMeta {
	m := make(map[string]categoryMeta, len(packCategories))
	for _, c := range packCategories {
		m[c.ID] = c
	}
	return m
}()

const perCategoryFetch = 15

// GenerateBasePack fetches the place catalog for a cell, one concurrent
// request per category. A failed category is omitted rather than failing
// the pack.
func (s *DefaultService) GenerateBasePack(ctx context.Context, loc models.LatLng, radiusKm float64, cell, date string) *models.BasePack {
	logger := utils.GetLogger()
	now := time.Now().UTC()

	pack := &models.BasePack{
		Meta: models.PackMeta{Cell: cell, Date: date, GeneratedAt: now, RadiusKm: radiusKm},
	}

	type groupResult struct {
		meta  categoryMeta
		items []models.PlaceItem
		err   error
	}

	resultsCh := make(chan groupResult, len(packCategories))
	var wg sync.WaitGroup
	for _, meta := range packCategories {
		wg.Add(1)
		go func(meta categoryMeta) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
			defer cancel()
			items, err := s.Places.Nearby(callCtx, loc, radiusKm, meta.Category, meta.Keyword, perCategoryFetch)
			resultsCh <- groupResult{meta: meta, items: items, err: err}
		}(meta)
	}
	wg.Wait()
	close(resultsCh)

	groups := make(map[string]models.PlaceGroup)
	for res := range resultsCh {
		if res.err != nil {
			logger.Warn("places category fetch failed",
				zap.String("category", res.meta.ID), zap.Error(res.err))
			continue
		}
		if len(res.items) == 0 {
			continue
		}
		groups[res.meta.ID] = models.PlaceGroup{
			ID:        res.meta.ID,
			Title:     res.meta.Title,
			Items:     res.items,
			UpdatedAt: now,
		}
	}

	// Deterministic group order.
	for _, meta := range packCategories {
		if g, ok := groups[meta.ID]; ok {
			pack.Groups = append(pack.Groups, g)
		}
	}
	return pack
}

// GenerateDeltaPack refreshes the fast-changing overlay: current weather
// plus an open-now snapshot per cataloged category. Weather and the
// category refreshes run concurrently.
func (s *DefaultService) GenerateDeltaPack(ctx context.Context, loc models.LatLng, timezone string, base *models.BasePack, cell, date, bucket string) *models.DeltaPack {
	logger := utils.GetLogger()

	pack := &models.DeltaPack{
		Meta:    models.PackMeta{Cell: cell, Date: date, Bucket: bucket, GeneratedAt: time.Now().UTC()},
		OpenNow: map[string]bool{},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		summary, err := s.Weather.Summarize(callCtx, loc, timezone)
		if err != nil {
			logger.Warn("weather refresh failed", zap.Error(err))
			return
		}
		mu.Lock()
		pack.Weather = summary
		mu.Unlock()
	}()

	if base != nil {
		for _, group := range base.Groups {
			meta, ok := categoriesByID[group.ID]
			if !ok {
				continue
			}
			wg.Add(1)
			go func(meta categoryMeta) {
				defer wg.Done()
				callCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
				defer cancel()
				items, err := s.Places.Nearby(callCtx, loc, base.Meta.RadiusKm, meta.Category, meta.Keyword, perCategoryFetch)
				if err != nil {
					logger.Warn("open-now refresh failed",
						zap.String("category", meta.ID), zap.Error(err))
					return
				}
				mu.Lock()
				for _, item := range items {
					if item.OpenNow != nil {
						pack.OpenNow[item.PlaceID] = *item.OpenNow
					}
				}
				mu.Unlock()
			}(meta)
		}
	}

	wg.Wait()
	return pack
}
