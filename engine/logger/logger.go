// Package logger holds the process-wide structured logger shared by the engine packages.
//
// The default logger discards everything so that library users opt in to output
// explicitly via SetLogger. The paddleball binaries install a configured logger at start-up.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

// nopHandler is a slog.Handler that drops every record. Enabled returns false so
// callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the shared logger. Passing nil restores the silent default.
//
// Parameters:
//   - l: the logger to install, or nil to discard all output
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	current.Store(l)
}

// Logger returns the shared logger. It is never nil.
//
// Returns:
//   - *slog.Logger: the currently installed logger
func Logger() *slog.Logger {
	return current.Load()
}

// ParseLevel converts a textual level ("debug", "info", "warn", "error") into a slog.Level.
// Matching is case-insensitive and an empty string means info.
//
// Parameters:
//   - s: the level name
//
// Returns:
//   - slog.Level: the parsed level
//   - error: an error if the name is not recognized
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a logger writing to w at the given level. format selects the handler:
// "json" produces a JSON handler, anything else the text handler.
//
// Parameters:
//   - w: destination for log output
//   - level: minimum level that is emitted
//   - format: "text" or "json"
//
// Returns:
//   - *slog.Logger: the configured logger
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
