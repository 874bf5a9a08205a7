// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about layout computation, cache operations,
// and board storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps the core free of observability framework dependencies.
//
// # Usage
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, objectCount, filter)
//	// ... compute ...
//	observability.Layout().OnLayoutComplete(ctx, groupCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout computations.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a layout computation.
	OnLayoutStart(ctx context.Context, objectCount int, filter string)

	// OnLayoutComplete records the end of a layout computation.
	OnLayoutComplete(ctx context.Context, groupCount int, duration time.Duration, err error)

	// OnRenderStart records the beginning of artifact rendering.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of artifact rendering.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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
// Store Hooks
// =============================================================================

// StoreHooks receives events from board storage operations.
type StoreHooks interface {
	// OnLoad records a board read.
	OnLoad(ctx context.Context, boardID string, err error)

	// OnSave records a board write.
	OnSave(ctx context.Context, boardID string, objectCount int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, string)                         {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, time.Duration, error)        {}
func (NoopLayoutHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, error)      {}
func (NoopStoreHooks) OnSave(context.Context, string, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
