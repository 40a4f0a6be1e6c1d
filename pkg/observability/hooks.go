// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of the restoration pipeline
// without adding hard dependencies on specific observability backends.
// Consumers register hooks at startup to receive an event before and after
// every pipeline stage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so pkg/restore never
// imports a backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStageHooks(&myStageHooks{})
//	    // ... run application
//	}
//
// The runner calls hooks to emit events:
//
//	observability.Stages().OnStageStart(ctx, runID, "decode")
//	// ... run the stage ...
//	observability.Stages().OnStageComplete(ctx, runID, "decode", items, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// StageHooks receives events from the restoration pipeline.
type StageHooks interface {
	// OnStageStart is called before a stage runs.
	OnStageStart(ctx context.Context, runID, stage string)

	// OnStageComplete is called after a stage finishes. items is the size of
	// the stage output; err is non-nil if the stage failed.
	OnStageComplete(ctx context.Context, runID, stage string, items int, duration time.Duration, err error)
}

// DatasetHooks receives events from dataset loading.
type DatasetHooks interface {
	OnDatasetLoad(ctx context.Context, source, format string, duration time.Duration, err error)
}

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string, string) {}
func (NoopStageHooks) OnStageComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopDatasetHooks is a no-op implementation of DatasetHooks.
type NoopDatasetHooks struct{}

func (NoopDatasetHooks) OnDatasetLoad(context.Context, string, string, time.Duration, error) {}

var (
	stageHooks   StageHooks   = NoopStageHooks{}
	datasetHooks DatasetHooks = NoopDatasetHooks{}
	hooksMu      sync.RWMutex
)

// SetStageHooks registers custom stage hooks.
// This should be called once at application startup before any pipeline runs.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// SetDatasetHooks registers custom dataset hooks.
func SetDatasetHooks(h DatasetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		datasetHooks = h
	}
}

// Stages returns the registered stage hooks.
func Stages() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Dataset returns the registered dataset hooks.
func Dataset() DatasetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return datasetHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
	datasetHooks = NoopDatasetHooks{}
}
