package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a shared Redis connection. Values are stored as
// JSON snapshots.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a Redis-backed cache over an established client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (c *Redis) Get(ctx context.Context, key string, dest any) bool {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Cache get failed", "key", key, "error", err)
		}

		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		slog.Warn("Cache decode failed", "key", key, "error", err)

		return false
	}

	return true
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Cache encode failed", "key", key, "error", err)

		return false
	}

	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		slog.Warn("Cache set failed", "key", key, "error", err)

		return false
	}

	return true
}

func (c *Redis) Delete(ctx context.Context, key string) bool {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("Cache delete failed", "key", key, "error", err)

		return false
	}

	return true
}

func (c *Redis) Clear(ctx context.Context) bool {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		slog.Warn("Cache clear failed", "error", err)

		return false
	}

	return true
}
