package utils

import (
	"context"
	"log"
	"time"

	"wayfare/config"

	"github.com/go-redis/redis/v8"
)

var (
	// ConvoCacheClient holds hot conversation-state snapshots.
	ConvoCacheClient *redis.Client
	// RecsCacheClient holds the two-tier recommendation packs.
	RecsCacheClient *redis.Client
)

// InitConvoCache initializes the Redis client for conversation snapshots.
func InitConvoCache() {
	ConvoCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisConvoDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ConvoCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Convo Cache): %v", err)
	}
}

// GetConvoCacheClient returns the conversation snapshot cache client.
func GetConvoCacheClient() *redis.Client {
	if ConvoCacheClient == nil {
		InitConvoCache()
	}
	return ConvoCacheClient
}

// InitRecsCache initializes the Redis client for recommendation packs.
func InitRecsCache() {
	RecsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRecsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RecsCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Recs Cache): %v", err)
	}
}

// GetRecsCacheClient returns the recommendation pack cache client.
func GetRecsCacheClient() *redis.Client {
	if RecsCacheClient == nil {
		InitRecsCache()
	}
	return RecsCacheClient
}
