// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the registered hooks without
// depending on a logging or metrics backend. The CLI registers
// implementations at startup (see internal/cli); everything defaults to
// no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetHTTPHooks(&debugHTTPHooks{logger: logger})
//
// Libraries call hooks to emit events:
//
//	observability.Inventory().OnLookupStart(ctx, coord)
//	// ... fetch metadata ...
//	observability.Inventory().OnLookupComplete(ctx, coord, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Inventory Hooks
// =============================================================================

// InventoryHooks receives events from report parsing and artifact lookups.
type InventoryHooks interface {
	// OnParseComplete records the end of a dependency report parse.
	OnParseComplete(ctx context.Context, mode string, coordinates int, duration time.Duration, err error)

	// OnLookupStart records the start of one coordinate lookup.
	OnLookupStart(ctx context.Context, coordinate string)

	// OnLookupComplete records the end of one coordinate lookup.
	OnLookupComplete(ctx context.Context, coordinate string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopInventoryHooks is a no-op implementation of InventoryHooks.
type NoopInventoryHooks struct{}

func (NoopInventoryHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}
func (NoopInventoryHooks) OnLookupStart(context.Context, string)                              {}
func (NoopInventoryHooks) OnLookupComplete(context.Context, string, time.Duration, error)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	inventoryHooks InventoryHooks = NoopInventoryHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetInventoryHooks registers custom inventory hooks.
// This should be called once at application startup before any lookups.
func SetInventoryHooks(h InventoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		inventoryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Inventory returns the registered inventory hooks.
func Inventory() InventoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return inventoryHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	inventoryHooks = NoopInventoryHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
