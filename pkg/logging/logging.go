// Package logging provides the slog.Logger factory used by every app in this
// repository.
//
// LOG_FORMAT selects the handler:
//
//	LOG_FORMAT=json    structured JSON for log aggregators (default)
//	LOG_FORMAT=text    key=value pairs for local development
//
// LOG_LEVEL sets the minimum level (debug, info, warn, error; default info).
//
// Request credentials must never reach a log line; callers log owner/repo/path
// context only.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger configured from environment variables, writing to stdout.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter is New with an explicit destination, for tests that capture output.
func NewWithWriter(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "text", "console":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
