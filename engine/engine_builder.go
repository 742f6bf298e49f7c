package engine

import (
	"time"

	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/engine/window"
	"github.com/Carmen-Shannon/estomania/engine/worker"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose input drives the scene.
//
// Parameters:
//   - w: a configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithEventHandlers replaces the serialisers used to forward window input.
//
// Parameters:
//   - handlers: event name to serialiser
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEventHandlers(handlers map[string]proxy.EventHandler) EngineBuilderOption {
	return func(e *engine) {
		e.handlers = handlers
	}
}

// WithWorkerOptions passes options through to the scene worker.
//
// Parameters:
//   - options: worker options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkerOptions(options ...worker.WorkerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.workerOptions = append(e.workerOptions, options...)
	}
}
