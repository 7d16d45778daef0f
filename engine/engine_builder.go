package engine

import (
	"github.com/Carmen-Shannon/paddleball/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrame sets the per-frame callback. Returning an error stops the loop.
//
// Parameters:
//   - callback: called once per frame with the seconds since the previous frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrame(callback func(deltaTime float32) error) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}
