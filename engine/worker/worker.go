// Package worker runs the goroutine that owns the scene. It drains messages from the port
// in order, resolves each against a fixed handler table and drives the render loop.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/estomania/engine/profiler"
	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/game"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownMessageType is returned for a message type with no handler. Run treats it as fatal.
	ErrUnknownMessageType = errors.New("no handler for type")

	// ErrNotStarted is returned by handlers that need the scene before a start message arrived.
	ErrNotStarted = errors.New("worker not started")

	// ErrAlreadyStarted is returned for a second start message.
	ErrAlreadyStarted = errors.New("worker already started")

	errRenderPanic = errors.New("render loop panicked")
)

// HandlerFunc handles one message type.
type HandlerFunc func(ctx context.Context, msg proxy.Message) error

// Worker is the sole owner of the proxy registry and the game scene. Nothing it owns is
// touched from another goroutine, so none of it is locked.
type Worker struct {
	inbox    <-chan proxy.Message
	proxies  *proxy.ProxyManager
	handlers map[proxy.MessageType]HandlerFunc
	log      *logrus.Entry

	gameScene      game.GameScene
	cameraSettings game.CameraSettings
	sceneOptions   []game.GameSceneBuilderOption
	pendingMap     *game.HexGridMap
	pendingGame    *game.Game

	frameInterval    time.Duration
	frames           *time.Ticker
	profilingEnabled bool
	profiler         *profiler.Profiler
	frameHook        func(g game.GameScene)
}

// NewWorker creates a Worker reading from inbox.
//
// Parameters:
//   - inbox: the receive side of the port, usually proxy.Port.Messages()
//   - options: variadic list of WorkerBuilderOption functions
//
// Returns:
//   - *Worker: the new worker
func NewWorker(inbox <-chan proxy.Message, options ...WorkerBuilderOption) *Worker {
	if inbox == nil {
		panic("worker: NewWorker requires an inbox")
	}
	w := &Worker{
		inbox:          inbox,
		proxies:        proxy.NewProxyManager(),
		log:            logger.Component("worker"),
		cameraSettings: game.DefaultCameraSettings(),
		frameInterval:  time.Second / 60,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.profilingEnabled {
		w.profiler = profiler.NewProfiler(time.Second)
	}

	w.handlers = map[proxy.MessageType]HandlerFunc{
		proxy.MessageTypeStart:             w.handleStart,
		proxy.MessageTypeMakeProxy:         w.handleMakeProxy,
		proxy.MessageTypeEvent:             w.handleEvent,
		proxy.MessageTypeGameData:          w.handleGameData,
		proxy.MessageTypeMapData:           w.handleMapData,
		proxy.MessageTypeRaycastFromCamera: w.handleRaycastFromCamera,
	}
	return w
}

// Proxies returns the worker's proxy registry.
func (w *Worker) Proxies() *proxy.ProxyManager {
	return w.proxies
}

// GameScene returns the scene created by the start message, or nil before it.
func (w *Worker) GameScene() game.GameScene {
	return w.gameScene
}

// Dispatch runs the handler registered for msg.Type.
//
// Parameters:
//   - ctx: context for the handler
//   - msg: the message
//
// Returns:
//   - error: ErrUnknownMessageType naming the type, or the handler's error
func (w *Worker) Dispatch(ctx context.Context, msg proxy.Message) error {
	fn, ok := w.handlers[msg.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Type)
	}
	return fn(ctx, msg)
}

// Run drains the inbox and renders frames until ctx is cancelled, the inbox closes or a message
// of unknown type arrives. Handler errors other than an unknown type are logged and the loop
// continues. A panic while rendering is logged and stops rendering; messages are still handled.
//
// Parameters:
//   - ctx: cancelling it ends the loop
//
// Returns:
//   - error: the unknown-type error, or nil on cancellation or a closed inbox
func (w *Worker) Run(ctx context.Context) error {
	defer w.stopFrames()

	for {
		var frames <-chan time.Time
		if w.frames != nil {
			frames = w.frames.C
		}

		select {
		case <-ctx.Done():
			w.log.Debug("worker stopping")
			return nil
		case msg, ok := <-w.inbox:
			if !ok {
				w.log.Debug("inbox closed")
				return nil
			}
			if err := w.Dispatch(ctx, msg); err != nil {
				if errors.Is(err, ErrUnknownMessageType) {
					w.log.WithError(err).Error("fatal message")
					return err
				}
				w.log.WithError(err).WithField("type", msg.Type).Error("message handler failed")
			}
		case <-frames:
			if err := w.renderFrame(); err != nil {
				w.log.WithError(err).Error("render loop stopped")
				w.stopFrames()
			}
		}
	}
}

// renderFrame draws one frame, converting a panic into errRenderPanic.
func (w *Worker) renderFrame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errRenderPanic, r)
		}
	}()
	if w.gameScene == nil {
		return nil
	}
	if err := w.gameScene.Frame(); err != nil {
		return err
	}
	if w.frameHook != nil {
		w.frameHook(w.gameScene)
	}
	if w.profiler != nil {
		w.profiler.Tick()
	}
	return nil
}

func (w *Worker) startFrames() {
	if w.frames == nil && w.frameInterval > 0 {
		w.frames = time.NewTicker(w.frameInterval)
	}
}

func (w *Worker) stopFrames() {
	if w.frames != nil {
		w.frames.Stop()
		w.frames = nil
	}
}
