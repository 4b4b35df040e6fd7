package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wayfare/config"
	"wayfare/models"
	recsService "wayfare/services/recs"
	"wayfare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypePackRefresh regenerates the fast recommendation tier for a zone cell.
const TypePackRefresh = "packs:refresh-delta"

// PackRefreshPayload pins the zone to refresh.
type PackRefreshPayload struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
}

// NewPackRefreshTask builds a queue task that refreshes the delta pack
// covering the given location.
func NewPackRefreshTask(lat, lon float64, timezone string) (*asynq.Task, error) {
	payload, err := json.Marshal(PackRefreshPayload{Lat: lat, Lon: lon, Timezone: timezone})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pack refresh payload: %w", err)
	}
	return asynq.NewTask(TypePackRefresh, payload, asynq.MaxRetry(2), asynq.Timeout(30*time.Second)), nil
}

// HandlePackRefreshTask regenerates the cached delta pack for the payload's
// zone so the next trip-assist turn sees fresh weather and open-now data.
func HandlePackRefreshTask(recs recsService.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p PackRefreshPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid pack refresh payload: %v: %w", err, asynq.SkipRetry)
		}
		loc := models.LatLng{Lat: p.Lat, Lon: p.Lon}
		if err := recs.RefreshDelta(ctx, loc, p.Timezone, time.Now()); err != nil {
			utils.GetLogger().Error("delta pack refresh failed",
				zap.Float64("lat", p.Lat), zap.Float64("lon", p.Lon), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("delta pack refreshed",
			zap.Float64("lat", p.Lat), zap.Float64("lon", p.Lon))
		return nil
	}
}

// NewQueueClient returns an asynq client on the queue Redis DB.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitPackRefreshWorker runs the background queue server. Blocks until the
// server stops, so callers run it in its own goroutine.
func InitPackRefreshWorker(recs recsService.Service) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePackRefresh, HandlePackRefreshTask(recs))

	utils.GetLogger().Info("pack refresh worker starting")
	if err := srv.Run(mux); err != nil {
		return fmt.Errorf("pack refresh worker failed: %w", err)
	}
	return nil
}
