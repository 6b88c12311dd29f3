// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module emit events through package-level hook
// registries instead of depending on a specific observability backend.
// The defaults are no-ops; a binary registers real implementations once at
// startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, theme)
//	// ... rasterize ...
//	observability.Render().OnRenderComplete(ctx, theme, len(png), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the screenshot renderer.
type RenderHooks interface {
	// OnTokenize records a tokenization pass. fallback is true when the
	// requested language was not recognized and plain text was used.
	OnTokenize(ctx context.Context, language string, lines int, fallback bool)

	// OnBackground records background generation. shader is the shader
	// actually used; fallback is true when a requested shader degraded.
	OnBackground(ctx context.Context, shader string, fallback bool, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, theme string)
	OnRenderComplete(ctx context.Context, theme string, size int, duration time.Duration, err error)
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
// Glyph Hooks
// =============================================================================

// GlyphHooks receives events from emoji glyph resolution.
type GlyphHooks interface {
	// OnGlyphFetch records a fetch from a glyph source after both caches missed.
	OnGlyphFetch(ctx context.Context, key string)

	// OnGlyphResolved records the outcome of a fetch.
	OnGlyphResolved(ctx context.Context, key string, duration time.Duration, err error)
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

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnTokenize(context.Context, string, int, bool)                       {}
func (NoopRenderHooks) OnBackground(context.Context, string, bool, time.Duration)           {}
func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopGlyphHooks is a no-op implementation of GlyphHooks.
type NoopGlyphHooks struct{}

func (NoopGlyphHooks) OnGlyphFetch(context.Context, string)                           {}
func (NoopGlyphHooks) OnGlyphResolved(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	glyphHooks  GlyphHooks  = NoopGlyphHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetGlyphHooks registers custom glyph hooks.
func SetGlyphHooks(h GlyphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		glyphHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Glyph returns the registered glyph hooks.
func Glyph() GlyphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return glyphHooks
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
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	glyphHooks = NoopGlyphHooks{}
	httpHooks = NoopHTTPHooks{}
}
