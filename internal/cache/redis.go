package cache

import (
	"context"
	"time"

	"github.com/gofiber/storage/redis/v3"
)

// Redis is a Store backed by a shared Redis instance, for multi-instance
// deployments where all replicas must see the same cache entries.
type Redis struct {
	storage *redis.Storage
}

// NewRedis connects to Redis using a redis:// URL.
func NewRedis(url string) *Redis {
	return &Redis{
		storage: redis.New(redis.Config{URL: url}),
	}
}

// Get returns the cached value for key. A missing key is (nil, false, nil).
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.storage.GetWithContext(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if len(val) == 0 {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.storage.SetWithContext(ctx, key, value, ttl)
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.storage.Close()
}
