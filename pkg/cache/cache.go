// Package cache provides pluggable byte caches for rendered artifacts and
// emoji glyph bitmaps.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multiple server instances
//
// # Keys
//
// Keys are produced by a [Keyer] so that every entry type has its own
// namespace. [ScopedKeyer] adds a prefix for multi-tenant isolation.
//
//	k := cache.NewDefaultKeyer()
//	key := k.EmojiKey("1f600")
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry type.
const (
	// TTLArtifact is how long rendered PNGs stay cached.
	TTLArtifact = 24 * time.Hour

	// TTLEmoji is how long fetched glyph bitmaps stay cached. Glyph sets
	// change rarely, so this is long.
	TTLEmoji = 30 * 24 * time.Hour
)
