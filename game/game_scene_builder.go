package game

import (
	"github.com/Carmen-Shannon/estomania/engine/renderer"
	"github.com/Carmen-Shannon/estomania/engine/scene"
)

// GameSceneBuilderOption is a functional option for configuring a GameScene.
// Use the With* functions to create options.
type GameSceneBuilderOption func(*gameScene)

// WithRendererOptions passes options through to the renderer.
//
// Parameters:
//   - options: renderer options
//
// Returns:
//   - GameSceneBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) GameSceneBuilderOption {
	return func(g *gameScene) {
		g.rendererOptions = append(g.rendererOptions, options...)
	}
}

// WithSceneOptions passes options through to the scene graph.
//
// Parameters:
//   - options: scene options
//
// Returns:
//   - GameSceneBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) GameSceneBuilderOption {
	return func(g *gameScene) {
		g.sceneOptions = append(g.sceneOptions, options...)
	}
}

// WithNameTagWorkers sets how many goroutines render name tags during a snapshot load.
//
// Parameters:
//   - workers: the pool size (minimum 1)
//
// Returns:
//   - GameSceneBuilderOption: option function to apply
func WithNameTagWorkers(workers int) GameSceneBuilderOption {
	return func(g *gameScene) {
		g.nameTagWorkers = workers
	}
}
