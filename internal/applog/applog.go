// Package applog provides module-scoped structured logging over the
// standard library's log/slog, tagging every record with the emitting
// package so engine, host, and loader logs stay distinguishable in a
// mixed stream.
package applog

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	base    *slog.Logger
	handler slog.Handler
)

func init() {
	handler = newHandler()
	base = slog.New(handler)
}

func newHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	if os.Getenv("VSTHOST_LOG_FORMAT") == "json" {
		return slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.NewTextHandler(os.Stderr, opts)
}

func levelFromEnv() slog.Level {
	switch os.Getenv("VSTHOST_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// For returns a logger scoped to module, tagged with a "module" attribute.
// Real-time audio callback code (capture/playback closures) must not log
// above trace level on the hot path — count drops and underruns instead
// of logging them per-occurrence.
func For(module string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With("module", module)
}

// SetOutputForTesting swaps the process-wide handler, for tests that want
// to assert on log output. Not for production use.
func SetOutputForTesting(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	handler = h
	base = slog.New(handler)
}
