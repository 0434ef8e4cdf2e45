package store

import "github.com/creastat/circuits"

// StoreType represents the type of handle store.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// NewStore creates a new Store based on the given type.
// Supports "memory" and "redis" driver types.
// For Redis, requires WithRedisClient and WithDirectory options.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}

	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore[string](), nil

	case StoreTypeRedis:
		if config.redisClient == nil || config.directory == nil {
			return nil, circuits.ErrInvalidConfig
		}
		s := NewRedisStore(config.redisClient, config.directory, config.redisTTL)
		if config.keyPrefix != "" {
			s.prefix = config.keyPrefix
		}
		if config.logger != nil {
			s.logger = config.logger
		}
		return s, nil

	default:
		return nil, circuits.ErrInvalidStoreType
	}
}
