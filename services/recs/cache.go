package recs

import (
	"context"
	"encoding/json"
	"time"

	"wayfare/models"

	"github.com/go-redis/redis/v8"
)

// PackStore persists recommendation packs. Writes are whole-value
// replacements; a pack is never mutated in place, so concurrent readers
// always see a complete pack.
type PackStore interface {
	GetBase(ctx context.Context, key string) (*models.BasePack, error)
	SetBase(ctx context.Context, key string, pack *models.BasePack) error
	GetDelta(ctx context.Context, key string) (*models.DeltaPack, error)
	SetDelta(ctx context.Context, key string, pack *models.DeltaPack) error
}

const (
	baseTTL  = 24 * time.Hour
	deltaTTL = 30 * time.Minute
)

// RedisPackStore implements PackStore on Redis.
type RedisPackStore struct {
	client *redis.Client
}

func NewRedisPackStore(client *redis.Client) *RedisPackStore {
	return &RedisPackStore{client: client}
}

func (s *RedisPackStore) GetBase(ctx context.Context, key string) (*models.BasePack, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pack models.BasePack
	if err := json.Unmarshal([]byte(data), &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (s *RedisPackStore) SetBase(ctx context.Context, key string, pack *models.BasePack) error {
	data, err := json.Marshal(pack)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, baseTTL).Err()
}

func (s *RedisPackStore) GetDelta(ctx context.Context, key string) (*models.DeltaPack, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pack models.DeltaPack
	if err := json.Unmarshal([]byte(data), &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (s *RedisPackStore) SetDelta(ctx context.Context, key string, pack *models.DeltaPack) error {
	data, err := json.Marshal(pack)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, deltaTTL).Err()
}

var _ PackStore = (*RedisPackStore)(nil)
