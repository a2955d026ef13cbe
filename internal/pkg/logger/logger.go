package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger. Development environments get a human
// readable console writer, everything else gets JSON lines on stdout.
func New(appName, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, appName, env)
}

func NewWithWriter(w io.Writer, appName, env string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := zerolog.InfoLevel
	env = strings.ToLower(strings.TrimSpace(env))
	if env == "development" || env == "dev" || env == "local" {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// Nop is used where a component is built without a logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
