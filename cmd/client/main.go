package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/estomania/engine"
	"github.com/Carmen-Shannon/estomania/engine/network"
	"github.com/Carmen-Shannon/estomania/engine/proxy"
	"github.com/Carmen-Shannon/estomania/engine/renderer"
	"github.com/Carmen-Shannon/estomania/engine/window"
	"github.com/Carmen-Shannon/estomania/engine/worker"
	"github.com/Carmen-Shannon/estomania/game"
	"github.com/Carmen-Shannon/estomania/internal/config"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
)

func init() {
	// GLFW must stay on the main thread.
	runtime.LockOSThread()
	logger.Init()
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	windowOptions := []window.WindowBuilderOption{
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
	}
	var w window.Window
	if cfg.Offscreen {
		w = window.NewHeadlessWindow(windowOptions...)
	} else {
		w = window.NewWindow(windowOptions...)
	}

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithWorkerOptions(
			worker.WithFrameRate(cfg.FrameRate),
			worker.WithProfiling(cfg.Profiling),
			worker.WithGameSceneOptions(game.WithNameTagWorkers(cfg.NameTagWorkers)),
		),
	)

	if cfg.FrameDump != "" {
		eng.SetTickCallback(frameDumper(eng.Canvas(), cfg.FrameDump, cfg.DumpInterval))
	}

	if cfg.Server != "" {
		go connect(ctx, cfg.Server, eng.Port())
	} else {
		logger.Log.Info("no server configured, running offline")
	}

	logger.Log.WithField("title", cfg.Title).Info("starting client")
	if err := eng.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("client stopped")
	}
	logger.Log.Info("client stopped")
}

// connect forwards server snapshots to the worker until ctx is cancelled.
func connect(ctx context.Context, server string, port proxy.MessagePoster) {
	log := logger.Component("network")
	sm := network.NewSocketManager(server)

	sm.On(network.EventMapData, func(data json.RawMessage) {
		if err := port.PostMessage(proxy.NewMapDataMessage(data)); err != nil {
			log.WithError(err).Warn("dropped map data")
		}
	})
	sm.On(network.EventGameData, func(data json.RawMessage) {
		msg, err := proxy.NewGameDataMessage(data)
		if err == nil {
			err = port.PostMessage(msg)
		}
		if err != nil {
			log.WithError(err).Warn("dropped game data")
		}
	})

	if err := sm.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("socket manager stopped")
	}
}

// frameDumper returns a tick callback that writes the canvas to path every interval.
func frameDumper(canvas *renderer.Canvas, path string, interval time.Duration) func(float32) {
	log := logger.Component("frame-dump").WithField("path", path)
	var elapsed time.Duration
	return func(dt float32) {
		elapsed += time.Duration(float64(dt) * float64(time.Second))
		if elapsed < interval {
			return
		}
		elapsed = 0
		if err := writeFrame(canvas, path); err != nil {
			log.WithError(err).Warn("failed to write frame")
		}
	}
}

func writeFrame(canvas *renderer.Canvas, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp frame: %w", err)
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp frame: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace frame: %w", err)
	}
	return nil
}
