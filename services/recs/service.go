package recs

import (
	"context"
	"time"

	"wayfare/models"
	"wayfare/services/places"
	"wayfare/services/weather"
	"wayfare/utils"

	"go.uber.org/zap"
)

// Result is the assembled recommendation set for one location and moment.
type Result struct {
	Cell    string
	Date    string
	Bucket  string
	Groups  []models.PlaceGroup
	Weather *models.WeatherSummary
}

// Service serves cached, scored nearby recommendations.
type Service interface {
	// Recommendations returns scored place groups for a location, reading
	// through the two-tier pack cache and generating missing tiers.
	Recommendations(ctx context.Context, loc models.LatLng, timezone string, radiusKm float64, now time.Time) (*Result, error)
	// RefreshDelta regenerates the fast tier for a cell, replacing the
	// cached value wholesale.
	RefreshDelta(ctx context.Context, loc models.LatLng, timezone string, now time.Time) error
}

// DefaultService wires the pack store to the place and weather providers.
type DefaultService struct {
	Store      PackStore
	Places     places.Provider
	Weather    weather.Service
	Resolution int
	PerGroup   int
	MaxTotal   int
}

func (s *DefaultService) resolution() int {
	if s.Resolution == 0 {
		return DefaultResolution
	}
	return s.Resolution
}

func (s *DefaultService) Recommendations(ctx context.Context, loc models.LatLng, timezone string, radiusKm float64, now time.Time) (*Result, error) {
	logger := utils.GetLogger()

	cell := ResolveZone(loc, s.resolution())
	date := LocalDate(now, timezone)
	bucket := ResolveTimeBucket(now, timezone)

	base, err := s.Store.GetBase(ctx, BaseKey(cell, date))
	if err != nil {
		logger.Warn("base pack read failed", zap.String("cell", cell), zap.Error(err))
	}
	if base == nil {
		base = s.GenerateBasePack(ctx, loc, radiusKm, cell, date)
		if len(base.Groups) > 0 {
			if err := s.Store.SetBase(ctx, BaseKey(cell, date), base); err != nil {
				logger.Warn("base pack write failed", zap.String("cell", cell), zap.Error(err))
			}
		}
	}

	delta, err := s.Store.GetDelta(ctx, DeltaKey(cell, date, bucket))
	if err != nil {
		logger.Warn("delta pack read failed", zap.String("cell", cell), zap.Error(err))
	}
	if delta == nil {
		delta = s.GenerateDeltaPack(ctx, loc, timezone, base, cell, date, bucket)
		if err := s.Store.SetDelta(ctx, DeltaKey(cell, date, bucket), delta); err != nil {
			logger.Warn("delta pack write failed", zap.String("cell", cell), zap.Error(err))
		}
	}

	return &Result{
		Cell:    cell,
		Date:    date,
		Bucket:  bucket,
		Groups:  AssembleRecommendations(base, delta, bucket, s.PerGroup, s.MaxTotal),
		Weather: delta.Weather,
	}, nil
}

func (s *DefaultService) RefreshDelta(ctx context.Context, loc models.LatLng, timezone string, now time.Time) error {
	cell := ResolveZone(loc, s.resolution())
	date := LocalDate(now, timezone)
	bucket := ResolveTimeBucket(now, timezone)

	base, err := s.Store.GetBase(ctx, BaseKey(cell, date))
	if err != nil {
		return err
	}
	delta := s.GenerateDeltaPack(ctx, loc, timezone, base, cell, date, bucket)
	return s.Store.SetDelta(ctx, DeltaKey(cell, date, bucket), delta)
}

var _ Service = (*DefaultService)(nil)
