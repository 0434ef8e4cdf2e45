package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/creastat/circuits"
	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for circuit handle entries
	defaultKeyPrefix = "circuit:"
	// Default TTL for entry keys (24 hours)
	defaultTTL = 24 * time.Hour
)

// RedisStore implements Store using Redis.
//
// Redis holds the encoded entry (the handle ID, or an absent marker) so a
// reconnect can find its association after the in-process map is gone.
// Handle IDs are resolved through a Directory of the circuits this
// process hosts; an ID it does not host yields circuits.ErrUnknownCircuit.
//
// Save registers handles in the directory and nothing here unregisters
// them, since other keys may still reference the same handle. Callers
// unregister a handle when its circuit is torn down, or the directory
// grows with every circuit ever saved.
type RedisStore struct {
	client    *redis.Client
	directory *circuits.Directory
	ttl       time.Duration
	prefix    string
	logger    *slog.Logger
}

// NewRedisStore creates a new Redis-based handle store.
// A nil dir is replaced with an empty directory.
func NewRedisStore(client *redis.Client, dir *circuits.Directory, ttl time.Duration) *RedisStore {
	if dir == nil {
		dir = circuits.NewDirectory()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		client:    client,
		directory: dir,
		ttl:       ttl,
		prefix:    defaultKeyPrefix,
		logger:    slog.Default(),
	}
}

// Load implements circuits.Store.
// Returns false if the key is not found (not an error).
// Refreshes TTL on every read.
func (s *RedisStore) Load(ctx context.Context, key string) (circuits.Entry, bool, error) {
	redisKey := s.key(key)
	val, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return circuits.Entry{}, false, nil
	}
	if err != nil {
		return circuits.Entry{}, false, fmt.Errorf("failed to get circuit entry: %w", err)
	}

	entry, err := circuits.DecodeEntry(val, s.directory)
	if err != nil {
		return circuits.Entry{}, true, err
	}

	// Log but don't fail if TTL refresh fails
	if err := s.client.Expire(ctx, redisKey, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to refresh circuit entry ttl", "key", key, "error", err)
	}

	return entry, true, nil
}

// Save implements circuits.Store.
// After a successful write the handle is registered in the directory so
// the entry resolves on read.
func (s *RedisStore) Save(ctx context.Context, key string, entry circuits.Entry) error {
	val, err := circuits.EncodeEntry(entry)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(key), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set circuit entry: %w", err)
	}
	if h, ok := entry.Handle(); ok {
		s.directory.Register(h)
	}
	return nil
}

// Directory returns the directory used to resolve stored handle IDs.
func (s *RedisStore) Directory() *circuits.Directory {
	return s.directory
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key constructs the Redis key for a connection key.
func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

var _ Store = (*RedisStore)(nil)
