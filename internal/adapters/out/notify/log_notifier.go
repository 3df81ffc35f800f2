// Package notify provides outbound notification delivery adapters. Delivery
// is best effort: the assignment workflow records notifications durably
// before any adapter runs, so a failed push never fails the business
// transaction.
package notify

import (
	"context"
	"log/slog"

	"fleet/internal/core/domain/model/notification"
)

// LogNotifier delivers notifications to the structured log. It stands in for
// a push gateway in environments without one and doubles as an audit trail.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(_ context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	n.logger.Info("notification dispatched",
		"notificationID", aggregate.ID().String(),
		"recipientID", aggregate.Recipient().RecipientID().String(),
		"tripID", aggregate.TripID().String(),
		"kind", aggregate.Kind().String(),
		"message", aggregate.Message(),
	)
	return nil
}
