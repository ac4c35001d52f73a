// Package cache stores raw Maven repository responses between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entry files under the user cache directory (default)
//   - [RedisCache]: a shared Redis instance, for teams and the HTTP server
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from [Options]. Entries carry their own TTL; an
// expired entry reads as a miss.
//
// The package also owns the retry helpers used by HTTP clients
// ([Retryable], [RetryWithBackoff]), because a retried fetch and a cache
// miss are two halves of the same lookup.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss with ok=false and a nil error; errors are reserved for
// backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects a cache backend.
type Options struct {
	Disabled bool   // use NullCache
	URL      string // redis:// or rediss:// URL; empty for the file cache
	Dir      string // file cache directory
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch {
	case opts.Disabled:
		return NewNullCache(), nil
	case strings.HasPrefix(opts.URL, "redis://"), strings.HasPrefix(opts.URL, "rediss://"):
		c, err := NewRedisCache(ctx, opts.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case opts.URL != "":
		return nil, fmt.Errorf("cache: unsupported url %q (want redis:// or rediss://)", opts.URL)
	default:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// NullCache stores nothing: every Get misses. It backs --no-cache and is
// the fallback when no cache directory can be determined.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// Clear reports zero entries; there is nothing to drop.
func (*NullCache) Clear(context.Context) (int, error) { return 0, nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
