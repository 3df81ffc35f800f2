package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// ReassignTripCommandHandler handles a direct manager re-route: the trip is
// moved to a new driver and vehicle while still pending, a trip_reassignment
// offer is created, and any offer still pending with the previous driver is
// superseded so the single-pending-offer invariant keeps holding.
type ReassignTripCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	notifier    ports.Notifier
}

// NewReassignTripCommandHandler creates a handler for trip re-route operations.
func NewReassignTripCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
) ReassignTripCommandHandler {
	return ReassignTripCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
		notifier:    notifier,
	}
}

// Handle processes the re-route command. Fails with ObjectNotFoundError when
// the trip, new driver, or new vehicle does not exist and InvalidStateError
// when the trip already left the offer cycle.
func (h ReassignTripCommandHandler) Handle(ctx context.Context, cmd ReassignTripCommand) error {
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

	if err := h.supersedePendingOffer(ctx, uow, cmd); err != nil {
		return err
	}

	managerID := cmd.ManagerID()
	newOffer, err := reoffer(ctx, uow, h.coordinator, reofferParams{
		tripID:      cmd.TripID(),
		newDriverID: cmd.NewDriverID(),
		vehicleID:   cmd.NewVehicleID(),
		kind:        notification.TripReassignment,
		assignedBy:  &managerID,
	})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Notify(ctx, newOffer)
	return nil
}

// supersedePendingOffer closes the offer still pending with the previous
// driver, if any, and releases that driver back to the available pool.
func (h ReassignTripCommandHandler) supersedePendingOffer(
	ctx context.Context,
	uow UoW,
	cmd ReassignTripCommand,
) error {
	pending, err := uow.NotificationRepository().GetPendingDriverOfferForTrip(ctx, cmd.TripID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = pending.MarkReassigned(); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Update(ctx, pending); err != nil {
		return err
	}

	previousDriverID := pending.Recipient().RecipientID()
	if previousDriverID.IsEqual(cmd.NewDriverID()) {
		return nil
	}

	previousDriver, err := uow.DriverRepository().Get(ctx, previousDriverID)
	if err != nil {
		return err
	}
	if err = previousDriver.ReleaseFromTrip(); err != nil {
		return err
	}
	return uow.DriverRepository().Update(ctx, previousDriver)
}
