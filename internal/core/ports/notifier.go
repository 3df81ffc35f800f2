package ports

import (
	"context"

	"fleet/internal/core/domain/model/notification"
)

// Notifier delivers a notification to its recipient over an external channel
// (push, email). Delivery is best effort: a returned error is logged by the
// adapter and must never block or fail the assignment transition that
// produced the notification.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}
