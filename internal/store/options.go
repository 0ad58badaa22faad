package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "pitch_coach:"

// StoreOption is a functional option for configuring a store.
type StoreOption func(*storeConfig)

// storeConfig holds configuration for stores.
type storeConfig struct {
	dir         string
	redisClient *redis.Client
	redisPrefix string
	pool        *pgxpool.Pool
}

// WithDir sets the directory of the file store.
func WithDir(dir string) StoreOption {
	return func(c *storeConfig) {
		c.dir = dir
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisPrefix sets the prefix prepended to every Redis key.
func WithRedisPrefix(prefix string) StoreOption {
	return func(c *storeConfig) {
		c.redisPrefix = prefix
	}
}

// WithPostgresPool sets the connection pool for the Postgres store.
func WithPostgresPool(pool *pgxpool.Pool) StoreOption {
	return func(c *storeConfig) {
		c.pool = pool
	}
}
