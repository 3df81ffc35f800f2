package ports

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notification aggregates.
type NotificationRepository interface {
	// Add persists a new notification aggregate to storage.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification aggregate using an
	// optimistic version check. Returns ConflictError if the stored version
	// no longer matches the one the aggregate was loaded with, which closes
	// the race between two concurrent resolutions of the same offer.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetPendingDriverOfferForTrip retrieves the pending driver-type offer for
	// the given trip, if one exists. Supports the at-most-one-pending-offer
	// invariant. Returns ObjectNotFoundError when none exists.
	GetPendingDriverOfferForTrip(ctx context.Context, tripID kernel.UUID) (*notification.Notification, error)

	// GetAllPendingExpiredBefore retrieves pending notifications whose window
	// elapsed before the given time. Used by the expiry sweep.
	GetAllPendingExpiredBefore(ctx context.Context, now time.Time) ([]*notification.Notification, error)
}
