// Package config loads the client's runtime settings from command-line flags, falling back to
// ESTOMANIA_* environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Carmen-Shannon/estomania/common"
)

const (
	EnvServer    = "ESTOMANIA_SERVER"
	EnvOffscreen = "ESTOMANIA_OFFSCREEN"
	EnvWidth     = "ESTOMANIA_WIDTH"
	EnvHeight    = "ESTOMANIA_HEIGHT"
	EnvFrameRate = "ESTOMANIA_FPS"
	EnvProfile   = "ESTOMANIA_PROFILE"
	EnvFrameDump = "ESTOMANIA_FRAME_DUMP"
)

const (
	defaultServer        = "ws://localhost:8080/ws"
	defaultTitle         = "estomania"
	defaultWidth         = 1280
	defaultHeight        = 720
	defaultFrameRate     = 60.0
	defaultDumpInterval  = 5 * time.Second
	defaultNameTagWorker = 4
)

// ErrInvalid is wrapped by every validation failure from Load.
var ErrInvalid = errors.New("invalid config")

// Config holds everything cmd/client needs to assemble the engine.
type Config struct {
	// Server is the game server WebSocket URL. Empty disables networking.
	Server string
	Title  string
	Width  int
	Height int
	// Offscreen runs without a platform window; input only arrives programmatically.
	Offscreen bool
	FrameRate float64
	Profiling bool
	// FrameDump is a PNG path the current canvas is written to every DumpInterval.
	FrameDump      string
	DumpInterval   time.Duration
	NameTagWorkers int
}

// Load parses args (without the program name) into a Config. Flags take precedence over the
// environment read through getenv, which takes precedence over defaults.
//
// Parameters:
//   - args: command-line arguments
//   - getenv: environment lookup, usually os.Getenv
//
// Returns:
//   - Config: the resolved configuration
//   - error: a flag parse error or an error wrapping ErrInvalid
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	cfg := Config{
		Server:         common.Coalesce(getenv(EnvServer), defaultServer),
		Title:          defaultTitle,
		Width:          common.Coalesce(envInt(getenv, EnvWidth), defaultWidth),
		Height:         common.Coalesce(envInt(getenv, EnvHeight), defaultHeight),
		Offscreen:      envBool(getenv, EnvOffscreen),
		FrameRate:      common.Coalesce(envFloat(getenv, EnvFrameRate), defaultFrameRate),
		Profiling:      envBool(getenv, EnvProfile),
		FrameDump:      getenv(EnvFrameDump),
		DumpInterval:   defaultDumpInterval,
		NameTagWorkers: defaultNameTagWorker,
	}

	fs := flag.NewFlagSet("estomania", flag.ContinueOnError)
	fs.StringVar(&cfg.Server, "server", cfg.Server, "game server WebSocket URL (empty to play offline)")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	fs.BoolVar(&cfg.Offscreen, "offscreen", cfg.Offscreen, "run without a platform window")
	fs.Float64Var(&cfg.FrameRate, "fps", cfg.FrameRate, "target render frames per second")
	fs.BoolVar(&cfg.Profiling, "profile", cfg.Profiling, "log frame statistics")
	fs.StringVar(&cfg.FrameDump, "frame-dump", cfg.FrameDump, "write the canvas to this PNG path periodically")
	fs.DurationVar(&cfg.DumpInterval, "dump-interval", cfg.DumpInterval, "interval between frame dumps")
	fs.IntVar(&cfg.NameTagWorkers, "name-tag-workers", cfg.NameTagWorkers, "workers rendering unit name tags")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and the server URL scheme.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate %v", ErrInvalid, c.FrameRate)
	}
	if c.FrameDump != "" && c.DumpInterval <= 0 {
		return fmt.Errorf("%w: dump interval %v", ErrInvalid, c.DumpInterval)
	}
	if c.NameTagWorkers <= 0 {
		return fmt.Errorf("%w: name tag workers %d", ErrInvalid, c.NameTagWorkers)
	}
	if c.Server == "" {
		return nil
	}
	u, err := url.Parse(c.Server)
	if err != nil {
		return fmt.Errorf("%w: server: %v", ErrInvalid, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%w: server scheme %q", ErrInvalid, u.Scheme)
	}
	return nil
}

func envInt(getenv func(string) string, key string) int {
	v, err := strconv.Atoi(getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func envFloat(getenv func(string) string, key string) float64 {
	v, err := strconv.ParseFloat(getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func envBool(getenv func(string) string, key string) bool {
	v, err := strconv.ParseBool(getenv(key))
	return err == nil && v
}
