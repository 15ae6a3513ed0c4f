package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// retry runs f up to attempts times with exponential backoff, stopping early
// when ctx ends.
func retry(ctx context.Context, logger *slog.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		logger.Warn("retrying", slog.String("error", err.Error()), slog.Duration("in", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
