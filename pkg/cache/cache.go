// Package cache stores computed layouts and rendered artifacts between runs.
//
// The CLI persists snapshots in a [FileCache] under the user's cache
// directory so repeated `tictac render` calls with the same board and
// parameters skip the layout pass. A [NullCache] disables caching.
// Servers can share entries through a [RedisCache], or keep them durably in
// a [MongoCache].
//
// Keys are built by a [Keyer] from a content hash plus the options that
// influence the result, so any change to the metrics or the layout
// parameters yields a different key.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/scorpionlabs/tictac/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired entries
	// are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default lifetimes for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// instrumented reports hits, misses and writes to the observability hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so that every Get and Set is reported to
// [observability.Cache]. The key type is the key's prefix up to the first
// colon ("layout", "artifact").
func Instrument(c Cache) Cache {
	if c == nil {
		return nil
	}
	if _, ok := c.(*instrumented); ok {
		return c
	}
	return &instrumented{Cache: c}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func keyType(key string) string {
	// Scoped keys carry their own prefix first; the type is the last
	// segment before the hash.
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
