package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations marshal values
// to JSON so callers stay storage-agnostic.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// Increment atomically increments an integer key
	Increment(ctx context.Context, key string) (int64, error)

	// Ping verifies the connection
	Ping(ctx context.Context) error
}
