package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	// process-wide logger, set once by Init during startup
	defaultLogger = New("development", os.Stderr)
	initOnce      sync.Once
)

// builds a logger for the given environment
func New(env string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if env == "production" {
		// production: JSON output for structured logging
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		// development: human-readable text output
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler)
}

// installs the process logger. only the first call has any effect.
func Init(env string) *slog.Logger {
	initOnce.Do(func() {
		if env == "production" {
			defaultLogger = New(env, os.Stdout)
		} else {
			defaultLogger = New(env, os.Stderr)
		}

		slog.SetDefault(defaultLogger)
	})

	return defaultLogger
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs a fatal error and exits
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}

// logs a fatal error with error and exits
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
