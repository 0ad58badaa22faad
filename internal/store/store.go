// Package store provides the key/value persistence drivers behind the pitch coach records.
//
// Every driver stores opaque JSON documents under a small fixed set of keys.
// Load returns nil with no error when a key has never been written.
package store

import (
	"context"
	"fmt"
	"strings"
)

// StoreType selects a persistence driver
type StoreType string

// Supported store types
const (
	StoreTypeMemory   StoreType = "memory"
	StoreTypeFile     StoreType = "file"
	StoreTypeRedis    StoreType = "redis"
	StoreTypePostgres StoreType = "postgres"
)

// Store persists JSON documents by key.
type Store interface {
	// Load returns the stored document, or nil if the key does not exist.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ParseStoreType validates a store type name
func ParseStoreType(s string) (StoreType, error) {
	switch t := StoreType(strings.ToLower(strings.TrimSpace(s))); t {
	case StoreTypeMemory, StoreTypeFile, StoreTypeRedis, StoreTypePostgres:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStoreType, s)
	}
}

// NewStore creates a Store of the given type.
// The file store requires WithDir, redis requires WithRedisClient and
// postgres requires WithPostgresPool.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{redisPrefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(), nil

	case StoreTypeFile:
		if config.dir == "" {
			return nil, fmt.Errorf("%w: file store requires a directory", ErrInvalidConfig)
		}
		return newFileStore(config.dir)

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, fmt.Errorf("%w: redis store requires a client", ErrInvalidConfig)
		}
		return &redisStore{client: config.redisClient, prefix: config.redisPrefix}, nil

	case StoreTypePostgres:
		if config.pool == nil {
			return nil, fmt.Errorf("%w: postgres store requires a connection pool", ErrInvalidConfig)
		}
		return &postgresStore{pool: config.pool}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStoreType, storeType)
	}
}

// ValidKey reports whether key is safe to use with every driver
func ValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

func checkKey(key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
