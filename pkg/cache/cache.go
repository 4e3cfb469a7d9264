// Package cache stores encoded render results keyed by dataset, selection
// and scene options.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory (CLI use)
//   - [RedisCache]: a shared Redis instance (server use)
//
// Keys come from a [Keyer]; values are opaque bytes, usually produced by
// [Encode].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	// TTLRender is how long a render result stays cached. Results are keyed
	// by a hash of the dataset, so a changed dataset never hits a stale entry.
	TTLRender = 24 * time.Hour

	// TTLExport is how long exported SVGs stay cached.
	TTLExport = 7 * 24 * time.Hour
)
