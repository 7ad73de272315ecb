// Package cache provides byte-oriented storage for registry responses.
//
// A [Cache] stores opaque payloads under string keys with a per-entry TTL.
// Three backends are available:
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, useful when several machines
//     audit the same repositories
//   - [NullCache]: stores nothing, used for --no-cache
//
// Keys are produced by a [Keyer] so that backends never see raw package
// names and different registries cannot collide:
//
//	k := cache.NewDefaultKeyer()
//	key := k.HTTPKey("npm", "left-pad") // "http:npm:left-pad"
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with expiring entries.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload stored under key. A missing or expired entry
	// is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a registry response. namespace identifies
	// the registry (e.g. "npm") and key the package name.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
