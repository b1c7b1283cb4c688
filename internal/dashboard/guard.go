// Package dashboard regenerates and serves the HTML dashboard artifact.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
)

// Result reports what TryRebuild did with a trigger.
type Result string

// TryRebuild outcomes.
const (
	ResultStarted Result = "STARTED"
	ResultSkipped Result = "SKIPPED"
)

// Guard serializes dashboard rebuilds with single-flight semantics: at most
// one rebuild runs at a time and redundant triggers are dropped, not queued.
// A rebuild already in flight reads the latest data anyway, so a dropped
// trigger loses nothing.
type Guard struct {
	logger  *slog.Logger
	rebuild func(ctx context.Context) error
	mu      sync.Mutex
}

// NewGuard wraps a rebuild function with the single-flight guard.
func NewGuard(rebuild func(ctx context.Context) error, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{rebuild: rebuild, logger: logger}
}

// TryRebuild starts a rebuild in the background unless one is already
// running. It never blocks; failures are logged, never surfaced to the chat
// user, and the lock is released on every exit path.
func (g *Guard) TryRebuild(ctx context.Context) Result {
	if !g.mu.TryLock() {
		g.logger.Info("dashboard rebuild skipped, already in progress")
		return ResultSkipped
	}

	go func() {
		defer g.mu.Unlock()
		g.logger.Info("starting background dashboard rebuild")
		if err := g.rebuild(ctx); err != nil {
			g.logger.Error("dashboard rebuild failed", "error", err)
		}
	}()

	return ResultStarted
}
