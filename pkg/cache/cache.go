// Package cache stores computed charts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache for several viewer instances
//   - [MongoCache]: document cache with a server-side TTL index
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// [Open] picks a backend from a URL:
//
//	c, err := cache.Open(ctx, "redis://localhost:6379/0", "")
//	c, err := cache.Open(ctx, "", "/home/me/.cache/sunburst")   // file cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes and render options, so a
// changed dataset or option never reads a stale entry. [ScopedKeyer] adds a
// prefix when several datasets share one backend.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the data for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Open returns the cache selected by url:
//
//   - "" or "file": a [FileCache] in dir
//   - "none": a [NullCache]
//   - redis:// or rediss://: a [RedisCache]
//   - mongodb:// or mongodb+srv://: a [MongoCache]
func Open(ctx context.Context, url, dir string) (Cache, error) {
	if err := errors.ValidateCacheURL(url); err != nil {
		return nil, err
	}
	var (
		c   Cache
		err error
	)
	switch {
	case url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		c, err = NewRedisCache(ctx, url)
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		c, err = NewMongoCache(ctx, url)
	default:
		if dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		c, err = NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Clear drops every entry of c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	cl, ok := c.(Clearer)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "cache %T cannot be cleared", c)
	}
	return cl.Clear(ctx)
}
