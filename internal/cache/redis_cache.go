package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shelfboard/backend/internal/domain"
)

// RedisPredictionCache stores predictions as JSON strings with a TTL.
type RedisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPredictionCache(client *redis.Client, ttl time.Duration) *RedisPredictionCache {
	return &RedisPredictionCache{client: client, ttl: ttl}
}

func (c *RedisPredictionCache) Get(ctx context.Context, key string) (domain.PredictionResponse, bool, error) {
	payload, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.PredictionResponse{}, false, nil
	}
	if err != nil {
		return domain.PredictionResponse{}, false, fmt.Errorf("redis get: %w", err)
	}

	var value domain.PredictionResponse
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		// Stale or foreign payload under our key; treat as a miss.
		return domain.PredictionResponse{}, false, nil
	}
	return value, true, nil
}

func (c *RedisPredictionCache) Set(ctx context.Context, key string, value domain.PredictionResponse) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisPredictionCache) Close() error {
	return c.client.Close()
}
