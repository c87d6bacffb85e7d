// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"receptionist/config"
)

// SnapshotClient is the Redis client backing the availability snapshot store.
var SnapshotClient *redis.Client

// InitRedis initializes the Redis client used for availability snapshots.
func InitRedis() {
	SnapshotClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SnapshotClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
}

// GetSnapshotClient returns the snapshot Redis client.
func GetSnapshotClient() *redis.Client {
	if SnapshotClient == nil {
		InitRedis()
	}
	return SnapshotClient
}
