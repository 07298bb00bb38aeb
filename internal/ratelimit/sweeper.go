package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// StartSweeper runs store.Sweep on the given interval until ctx is canceled.
// Runs independently of request handling.
func StartSweeper(ctx context.Context, store Store, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Debug("rate limit sweeper stopped")
				return
			case <-ticker.C:
				store.Sweep(ctx)
			}
		}
	}()
}
