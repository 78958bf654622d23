// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about dispatches, transport calls, cache operations and
// credential loads.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The [prom] subpackage implements every hook interface with Prometheus
// collectors.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDispatchHooks(&myDispatchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dispatch().OnDispatchStart(ctx, requestID, url)
//	// ... fetch and decode ...
//	observability.Dispatch().OnDispatchComplete(ctx, requestID, url, duration, err)
//
// [prom]: github.com/matzehuels/evekit/pkg/observability/prom
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dispatch Hooks
// =============================================================================

// DispatchHooks receives events from the request dispatcher.
type DispatchHooks interface {
	// OnDispatchStart records the start of one dispatch.
	OnDispatchStart(ctx context.Context, requestID, url string)

	// OnDispatchComplete records the outcome of one dispatch. err is nil on success.
	OnDispatchComplete(ctx context.Context, requestID, url string, duration time.Duration, err error)
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
// Key Hooks
// =============================================================================

// KeyHooks receives events from the credential cache.
type KeyHooks interface {
	// OnKeyLoad records one remote key-info fetch. valid is meaningful only when err is nil.
	OnKeyLoad(ctx context.Context, keyID int64, valid bool, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDispatchHooks is a no-op implementation of DispatchHooks.
type NoopDispatchHooks struct{}

func (NoopDispatchHooks) OnDispatchStart(context.Context, string, string) {}
func (NoopDispatchHooks) OnDispatchComplete(context.Context, string, string, time.Duration, error) {
}

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

// NoopKeyHooks is a no-op implementation of KeyHooks.
type NoopKeyHooks struct{}

func (NoopKeyHooks) OnKeyLoad(context.Context, int64, bool, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dispatchHooks DispatchHooks = NoopDispatchHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	keyHooks      KeyHooks      = NoopKeyHooks{}
	hooksMu       sync.RWMutex
)

// SetDispatchHooks registers custom dispatch hooks.
// This should be called once at application startup before any dispatch.
func SetDispatchHooks(h DispatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dispatchHooks = h
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

// SetKeyHooks registers custom credential cache hooks.
func SetKeyHooks(h KeyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		keyHooks = h
	}
}

// Dispatch returns the registered dispatch hooks.
func Dispatch() DispatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dispatchHooks
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

// Key returns the registered credential cache hooks.
func Key() KeyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return keyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dispatchHooks = NoopDispatchHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
	keyHooks = NoopKeyHooks{}
}
