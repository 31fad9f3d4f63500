// Package cache stores raw HTTP payloads between runs.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per key below a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used when serving over HTTP
//   - [NullCache]: stores nothing, used with --no-cache
//
// Values are opaque bytes with an optional TTL. Keys are built with [Key],
// which hashes arbitrary parts so that URLs and other user input never end
// up in file names or Redis key patterns verbatim.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value. A missing or expired entry is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache for which every Get is a miss.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
