package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger for the whole client. It is usable before Init runs
// (tests never call Init), in which case logrus defaults apply.
var Log = logrus.New()

// Init configures the global logger. Call it once from main before any
// goroutines start.
//
// LOG_LEVEL selects the level (default "info"), LOG_FORMAT=json switches to the
// JSON formatter, anything else uses coloured text with full timestamps.
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component returns an entry tagged with the subsystem name, e.g. "worker" or "proxy".
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
