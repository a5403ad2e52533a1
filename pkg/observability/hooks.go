// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about graph builds, renders, the per-build version memo
// and registry HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main (or the CLI), never by libraries, so library
// packages stay free of backend imports.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&progressHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnBuildStart(ctx, id, "npm", "express")
//	// ... resolve ...
//	observability.Build().OnBuildComplete(ctx, id, nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the dependency graph builder.
type BuildHooks interface {
	OnBuildStart(ctx context.Context, buildID, registry, pkg string)
	OnFetch(ctx context.Context, buildID, pkg string, duration time.Duration, err error)
	OnLayerComplete(ctx context.Context, buildID string, depth, fetched, total int)
	OnBuildComplete(ctx context.Context, buildID string, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from renderers.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, renderer string, nodeCount int)
	OnRenderComplete(ctx context.Context, renderer string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from in-memory caches.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)
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

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string, string, string)               {}
func (NoopBuildHooks) OnFetch(context.Context, string, string, time.Duration, error)      {}
func (NoopBuildHooks) OnLayerComplete(context.Context, string, int, int, int)             {}
func (NoopBuildHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet is the process-wide set of registered hooks.
type hookSet struct {
	mu     sync.RWMutex
	build  BuildHooks
	render RenderHooks
	cache  CacheHooks
	http   HTTPHooks
}

var hooks = newHookSet()

func newHookSet() *hookSet {
	return &hookSet{
		build:  NoopBuildHooks{},
		render: NoopRenderHooks{},
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
	}
}

// set stores h in *slot unless h is nil.
func set[T any](slot *T, h T, isNil bool) {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if !isNil {
		*slot = h
	}
}

func get[T any](slot *T) T {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return *slot
}

// SetBuildHooks registers custom build hooks.
// Passing nil leaves the current hooks in place.
func SetBuildHooks(h BuildHooks) { set(&hooks.build, h, h == nil) }

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) { set(&hooks.render, h, h == nil) }

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) { set(&hooks.cache, h, h == nil) }

// SetHTTPHooks registers custom HTTP hooks.
// Call it before any registry client issues requests.
func SetHTTPHooks(h HTTPHooks) { set(&hooks.http, h, h == nil) }

// Build returns the registered build hooks.
func Build() BuildHooks { return get(&hooks.build) }

// Render returns the registered render hooks.
func Render() RenderHooks { return get(&hooks.render) }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return get(&hooks.cache) }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return get(&hooks.http) }

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	fresh := newHookSet()
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.build, hooks.render, hooks.cache, hooks.http = fresh.build, fresh.render, fresh.cache, fresh.http
}
