// Package cache provides the key-value cache used for read-through caching
// of shopping lists and short-link resolutions. Entries are ephemeral and
// always reconstructible from the database; staleness is bounded only by TTL.
package cache

import (
	"context"
	"time"
)

// Store is the cache abstraction injected into services. Implementations
// must be safe for concurrent use. Callers treat errors as a miss on read
// and a no-op on write, so an unavailable cache never takes down the read
// path.
type Store interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
