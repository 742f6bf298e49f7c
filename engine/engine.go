package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/engine/renderer"
	"github.com/Carmen-Shannon/estomania/engine/window"
	"github.com/Carmen-Shannon/estomania/engine/worker"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"github.com/sirupsen/logrus"
)

// engine implements the Engine interface.
// Coordinates the window on the calling goroutine, the scene worker and the tick loop.
type engine struct {
	window   window.Window
	canvas   *renderer.Canvas
	port     *proxy.Port
	worker   *worker.Worker
	proxy    proxy.ElementProxy
	handlers map[string]proxy.EventHandler
	log      *logrus.Entry

	workerOptions []worker.WorkerBuilderOption

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	wg       sync.WaitGroup
	quit     chan struct{}
	quitOnce sync.Once

	mu        sync.Mutex
	workerErr error
}

// Engine is the main entry point of the client.
// It owns the window and its input, hands the canvas to the scene worker and forwards input to it.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Canvas returns the canvas the worker draws into. Read it with Snapshot only.
	//
	// Returns:
	//   - *renderer.Canvas: the canvas
	Canvas() *renderer.Canvas

	// Port returns the message port to the worker. Network code posts snapshots here.
	//
	// Returns:
	//   - *proxy.Port: the port
	Port() *proxy.Port

	// Worker returns the scene worker. Its state belongs to the worker goroutine while Run is active.
	//
	// Returns:
	//   - *worker.Worker: the worker
	Worker() *worker.Worker

	// SetTickCallback registers the function called each engine tick on its own goroutine.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Run starts the worker, registers the window as the worker's input element, transfers the
	// canvas and runs the window message loop. It blocks until the window closes, ctx is
	// cancelled, Quit is called or the worker fails.
	//
	// Parameters:
	//   - ctx: cancelling it shuts the engine down
	//
	// Returns:
	//   - error: the worker's fatal error, if any
	Run(ctx context.Context) error

	// Quit signals the engine to stop. Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine around a window.
// Panics if no window is configured.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quit:           make(chan struct{}),
		port:           proxy.NewPort(),
		handlers:       proxy.DefaultEventHandlers(),
		log:            logger.Component("engine"),
		engineTickRate: time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		panic("engine: NewEngine requires a window")
	}

	e.canvas = renderer.NewCanvas("canvas", e.window.Width(), e.window.Height())
	e.worker = worker.NewWorker(e.port.Messages(), e.workerOptions...)
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Canvas() *renderer.Canvas {
	return e.canvas
}

func (e *engine) Port() *proxy.Port {
	return e.port
}

func (e *engine) Worker() *worker.Worker {
	return e.worker
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.wg.Add(3)
	go e.handleWorker(ctx)
	go e.handleEngine(ctx)
	go e.handleQuit(ctx)

	e.proxy = proxy.NewElementProxy(e.window, e.window, e.port, e.handlers)
	if err := e.port.PostMessage(proxy.NewStartMessage(e.canvas, e.proxy.ID())); err != nil {
		e.log.WithError(err).Error("failed to start worker")
		e.Quit()
	}

	e.window.ProcessMessages()

	e.Quit()
	cancel()
	e.proxy.Close()
	e.wg.Wait()
	e.port.Close()
	if err := e.window.Close(); err != nil {
		e.log.WithError(err).Warn("failed to close window")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workerErr
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
	})
}

// handleWorker runs the scene worker until ctx ends. A worker failure stops the engine.
func (e *engine) handleWorker(ctx context.Context) {
	defer e.wg.Done()
	if err := e.worker.Run(ctx); err != nil {
		e.mu.Lock()
		e.workerErr = fmt.Errorf("worker: %w", err)
		e.mu.Unlock()
		e.Quit()
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate until ctx ends.
func (e *engine) handleEngine(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		}
	}
}

// handleQuit waits for Quit or ctx and then stops the window loop.
func (e *engine) handleQuit(ctx context.Context) {
	defer e.wg.Done()
	select {
	case <-e.quit:
	case <-ctx.Done():
	}
	e.window.RequestClose()
}
