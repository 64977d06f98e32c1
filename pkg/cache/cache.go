// Package cache stores computed layout results between CLI runs.
//
// Layout output is a pure function of the input node set and the layout
// options, so results are keyed by a content hash of both. The cache is a
// convenience for repeated runs over large unchanged vaults; correctness
// never depends on it, and NullCache disables it entirely.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the layout options that participate in the cache key.
// Any option that changes output coordinates must be included here.
type LayoutKeyOpts struct {
	Orientation       string
	ParentChildMargin float64
	PeerMargin        float64
}

// LayoutKey builds the cache key for a layout run over the given input
// bytes.
func LayoutKey(input []byte, opts LayoutKeyOpts) string {
	return hashKey("layout", Hash(input), opts)
}

// SeedKey builds the cache key for a seeding run over the given input bytes.
func SeedKey(input []byte) string {
	return hashKey("seed", Hash(input))
}
