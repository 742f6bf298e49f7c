package worker

import (
	"time"

	"github.com/Carmen-Shannon/estomania/game"
)

// WorkerBuilderOption is a functional option for configuring a Worker.
// Use the With* functions to create options.
type WorkerBuilderOption func(*Worker)

// WithFrameRate sets the render loop rate in frames per second.
// Values <= 0 disable the render loop; messages are still handled.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - WorkerBuilderOption: option function to apply
func WithFrameRate(fps float64) WorkerBuilderOption {
	return func(w *Worker) {
		if fps <= 0 {
			w.frameInterval = 0
			return
		}
		w.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithCameraSettings sets the camera used when the scene is created.
//
// Parameters:
//   - settings: the camera settings
//
// Returns:
//   - WorkerBuilderOption: option function to apply
func WithCameraSettings(settings game.CameraSettings) WorkerBuilderOption {
	return func(w *Worker) {
		w.cameraSettings = settings
	}
}

// WithGameSceneOptions passes options through to game.NewGameScene.
//
// Parameters:
//   - options: game scene options
//
// Returns:
//   - WorkerBuilderOption: option function to apply
func WithGameSceneOptions(options ...game.GameSceneBuilderOption) WorkerBuilderOption {
	return func(w *Worker) {
		w.sceneOptions = append(w.sceneOptions, options...)
	}
}

// WithProfiling enables frame and memory statistics in the log.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - WorkerBuilderOption: option function to apply
func WithProfiling(enabled bool) WorkerBuilderOption {
	return func(w *Worker) {
		w.profilingEnabled = enabled
	}
}

// WithFrameHook registers a function called after every rendered frame.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - WorkerBuilderOption: option function to apply
func WithFrameHook(fn func(g game.GameScene)) WorkerBuilderOption {
	return func(w *Worker) {
		w.frameHook = fn
	}
}
