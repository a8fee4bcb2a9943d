// Package logging provides zerolog construction and context plumbing for
// all ecocoach components. Every component logs through a logger obtained
// from FromContext so events carry the trace fields set up by the CLI or
// HTTP entry point.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string

	// Format selects the event encoding: "console" for human-readable
	// terminal output, "json" for machine-readable logs.
	Format string

	// Output selects the destination: "stderr", "stdout", or "file".
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds the caller field to every event.
	Caller bool
}

// New builds a zerolog.Logger from cfg. When a file destination cannot be
// opened the logger falls back to stderr rather than failing the process;
// logging must never take the application down.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			out = os.Stderr
		} else {
			out = f
		}
	default:
		out = os.Stderr
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// ComponentLogger returns a child logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled-default
// logger when none was attached. Callers should prefer this over package
// globals so request-scoped fields propagate.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
