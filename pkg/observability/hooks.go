// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout passes, cache operations, and peer traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetPeerHooks(&myPeerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnCompute(generation, len(records), duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the waterfall layout controller.
// Layout passes are synchronous and carry no context.
type LayoutHooks interface {
	// OnCompute records a completed layout pass.
	OnCompute(generation uint64, records int, duration time.Duration)

	// OnInvalidate records that the cached layout was discarded.
	OnInvalidate(reason string)
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
// Peer Hooks
// =============================================================================

// PeerHooks receives events from the move exchange session.
type PeerHooks interface {
	// OnSend records an outgoing move. err is nil on success.
	OnSend(ctx context.Context, channel string, index int, err error)

	// OnReceive records an incoming move.
	OnReceive(ctx context.Context, channel, from string, index int)

	// OnDecodeError records a frame that could not be decoded.
	OnDecodeError(ctx context.Context, channel string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCompute(uint64, int, time.Duration) {}
func (NoopLayoutHooks) OnInvalidate(string)                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopPeerHooks is a no-op implementation of PeerHooks.
type NoopPeerHooks struct{}

func (NoopPeerHooks) OnSend(context.Context, string, int, error)     {}
func (NoopPeerHooks) OnReceive(context.Context, string, string, int) {}
func (NoopPeerHooks) OnDecodeError(context.Context, string, error)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	peerHooks   PeerHooks   = NoopPeerHooks{}
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
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetPeerHooks registers custom peer hooks.
// This should be called once at application startup before any session is opened.
func SetPeerHooks(h PeerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		peerHooks = h
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

// Peer returns the registered peer hooks.
func Peer() PeerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return peerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	peerHooks = NoopPeerHooks{}
}
