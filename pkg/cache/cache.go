// Package cache provides the storage layer for computed layouts and rendered
// artifacts.
//
// The [Cache] interface is a minimal byte store with TTLs. Three backends are
// provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared storage for multiple server instances
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] so that every entry point (CLI, HTTP API)
// derives identical keys from identical inputs:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(doc), cache.LayoutKeyOpts{Width: 375})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // reuse
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLLayout is how long a computed layout stays cached. Layouts are a
	// pure function of the document and options, so this only bounds disk use.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a Cache that stores nothing. Every Get misses, so a runner
// backed by it recomputes every layout. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
