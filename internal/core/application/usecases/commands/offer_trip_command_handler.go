package commands

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// OfferTripCommandHandler handles notification creation. For driver offers it
// also puts the driver on a pending offer and enforces that at most one
// driver offer is pending per trip at any time.
//
// Delivery to the recipient happens after the commit and is best effort: a
// failed push never rolls back the recorded notification.
type OfferTripCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewOfferTripCommandHandler creates a handler for notification creation operations.
func NewOfferTripCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) OfferTripCommandHandler {
	return OfferTripCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the offer command. Fails with ObjectNotFoundError when the
// driver, vehicle, or trip does not exist and ConflictError when a pending
// driver offer for the trip already exists.
func (h OfferTripCommandHandler) Handle(ctx context.Context, cmd OfferTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID()); err != nil {
		return err
	}
	if _, err := uow.TripRepository().Get(ctx, cmd.TripID()); err != nil {
		return err
	}

	newNotification, err := notification.NewNotification(
		kernel.NewUUID(),
		cmd.Recipient(),
		cmd.TripID(),
		cmd.VehicleID(),
		cmd.ParcelIDs(),
		cmd.Kind(),
		cmd.Message(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = newNotification.AttachRoute(cmd.DeliveryLocations(), cmd.StartLocation()); err != nil {
		return err
	}
	if assignedBy := cmd.AssignedBy(); assignedBy != nil {
		if err = newNotification.SetAssignedBy(*assignedBy); err != nil {
			return err
		}
	}

	if driverRecipient, ok := cmd.Recipient().(notification.DriverRecipient); ok {
		offeredDriver, driverErr := uow.DriverRepository().Get(ctx, driverRecipient.RecipientID())
		if driverErr != nil {
			return driverErr
		}
		if cmd.Kind().IsOffer() {
			if err = h.placeDriverOffer(ctx, uow, offeredDriver, cmd.TripID()); err != nil {
				return err
			}
		}
	}

	if err = uow.NotificationRepository().Add(ctx, newNotification); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Notify(ctx, newNotification)
	return nil
}

// placeDriverOffer checks the single-pending-offer invariant and moves the
// driver onto the pending offer.
func (h OfferTripCommandHandler) placeDriverOffer(
	ctx context.Context,
	uow UoW,
	offeredDriver *driver.Driver,
	tripID kernel.UUID,
) error {
	existing, err := uow.NotificationRepository().GetPendingDriverOfferForTrip(ctx, tripID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("trip already has a pending driver offer")
	}

	if err = offeredDriver.MarkOffered(); err != nil {
		return err
	}

	return uow.DriverRepository().Update(ctx, offeredDriver)
}
