package notify

import (
	"context"
	"log/slog"
	"time"

	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/ports"
)

// RetryConfig describes the retry behavior of RetryingNotifier.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingNotifier wraps another notifier with exponential backoff. Delivery
// transports flake; a few spaced attempts absorb transient failures before
// the caller logs and moves on.
type RetryingNotifier struct {
	next   ports.Notifier
	logger *slog.Logger
	cfg    RetryConfig
}

// NewRetryingNotifier wraps next with retry behavior. Returns nil if next is nil.
func NewRetryingNotifier(next ports.Notifier, logger *slog.Logger, cfg RetryConfig) *RetryingNotifier {
	if next == nil {
		return nil
	}
	return &RetryingNotifier{next: next, logger: logger, cfg: cfg}
}

// Notify attempts delivery up to MaxAttempts times, backing off between
// attempts. Returns the last error when all attempts fail.
func (n *RetryingNotifier) Notify(ctx context.Context, aggregate *notification.Notification) error {
	var lastErr error
	for attempt := 1; attempt <= n.cfg.MaxAttempts; attempt++ {
		err := n.next.Notify(ctx, aggregate)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == n.cfg.MaxAttempts {
			break
		}

		delay := backoff(n.cfg.BaseDelay, n.cfg.MaxDelay, attempt)
		n.logger.Warn("notifier retry",
			"notificationID", aggregate.ID().String(),
			"attempt", attempt,
			"delay", delay.String(),
			"err", err.Error(),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
