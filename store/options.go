package store

import (
	"log/slog"
	"time"

	"github.com/creastat/circuits"
	"github.com/redis/go-redis/v9"
)

// StoreOption is a functional option for configuring a handle store.
type StoreOption func(*storeConfig)

// storeConfig holds configuration for handle stores.
type storeConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
	keyPrefix   string
	directory   *circuits.Directory
	logger      *slog.Logger
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for Redis keys.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// WithKeyPrefix sets the prefix prepended to every Redis key.
func WithKeyPrefix(prefix string) StoreOption {
	return func(c *storeConfig) {
		c.keyPrefix = prefix
	}
}

// WithDirectory sets the directory used to resolve persisted handle IDs.
func WithDirectory(dir *circuits.Directory) StoreOption {
	return func(c *storeConfig) {
		c.directory = dir
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		c.logger = logger
	}
}
