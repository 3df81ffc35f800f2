package commands

import (
	"context"
	"errors"
	"time"

	"fleet/internal/pkg/errs"
)

// ExpireNotificationsCommandHandler settles pending notifications whose
// active window elapsed. A row that was resolved or expired concurrently is
// skipped rather than failing the whole sweep.
type ExpireNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewExpireNotificationsCommandHandler creates a handler for expiry sweep operations.
func NewExpireNotificationsCommandHandler(uowFactory NotificationUoWFactory) ExpireNotificationsCommandHandler {
	return ExpireNotificationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expiry sweep command. Returns the number of
// notifications settled.
func (h ExpireNotificationsCommandHandler) Handle(ctx context.Context, cmd ExpireNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	expired, err := uow.NotificationRepository().GetAllPendingExpiredBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, n := range expired {
		if err = n.MarkExpired(now); err != nil {
			return 0, err
		}

		err = uow.NotificationRepository().Update(ctx, n)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return 0, err
		}
		settled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return settled, nil
}
