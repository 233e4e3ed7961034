// Package cache provides the redis-backed read-side cache used by reporting.
// Failures degrade to cache misses; nothing correctness-critical lives here.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis at the given URL. Returns an error when
// the URL cannot be parsed or the server is unreachable.
func NewRedisCache(ctx context.Context, redisURL string) (portssvc.Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Redis get failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	return raw, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("Redis set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("Redis delete failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
