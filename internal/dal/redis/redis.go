package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// Client represents a Redis client shared across the process.
type Client struct {
	rdb *redis.Client
}

// Redis returns the underlying go-redis client.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// MustNewClient creates a new Redis client and verifies connectivity.
func MustNewClient() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("ORDER_REDIS_ADDR"),
		Password: os.Getenv("ORDER_REDIS_PASSWORD"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic("failed to connect to redis: " + err.Error())
	}

	slog.Info("Redis connected")

	return &Client{rdb: rdb}
}
