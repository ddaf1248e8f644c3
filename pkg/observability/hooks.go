// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about plot builds and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnStageStart(ctx, buildID, "compute statistic")
//	// ... run the stage ...
//	observability.Build().OnStageComplete(ctx, buildID, "compute statistic", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// BuildHooks receives events from the plot build pipeline.
type BuildHooks interface {
	// OnBuildStart records the start of a plot build.
	OnBuildStart(ctx context.Context, buildID string, layerCount int)

	// OnBuildComplete records the end of a plot build.
	OnBuildComplete(ctx context.Context, buildID string, duration time.Duration, err error)

	// OnStageStart records the start of one build stage.
	OnStageStart(ctx context.Context, buildID, stage string)

	// OnStageComplete records the end of one build stage.
	OnStageComplete(ctx context.Context, buildID, stage string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string, int) {}

func (NoopBuildHooks) OnBuildComplete(context.Context, string, time.Duration, error) {}

func (NoopBuildHooks) OnStageStart(context.Context, string, string) {}

func (NoopBuildHooks) OnStageComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}

func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	mu         sync.RWMutex
	buildHooks BuildHooks = NoopBuildHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
)

// SetBuildHooks registers build pipeline hooks. Call at startup,
// before builds run.
func SetBuildHooks(h BuildHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopBuildHooks{}
	}
	buildHooks = h
}

// SetCacheHooks registers cache hooks. Call at startup.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Reset restores the no-op hooks. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	buildHooks = NoopBuildHooks{}
	cacheHooks = NoopCacheHooks{}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	mu.RLock()
	defer mu.RUnlock()
	return buildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
