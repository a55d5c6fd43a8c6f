// Package cache provides key-value storage for memoized measurements.
//
// Measuring a file (parse, minify, compress) is the expensive part of a walk.
// When caching is enabled, results are stored under a key derived from the
// file's content and the measurement settings, so unchanged files are not
// re-minified across runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a directory (the CLI default)
//   - [RedisCache]: a shared Redis instance, for CI machines
//   - [NullCache]: stores nothing (caching disabled)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long measurement entries live. Entries are keyed by
// content, so they never go stale; the TTL only bounds disk usage.
const DefaultTTL = 30 * 24 * time.Hour

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Key builds a cache key in namespace from arbitrary JSON-encodable parts.
// The same parts always produce the same key.
func Key(namespace string, parts ...any) string {
	return hashKey(namespace, parts...)
}
