package commands

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// ReassignDriverCommandHandler handles a manager's response to a decline: the
// trip re-enters the offer cycle with a new driver, a fresh reassign_driver
// offer is created, and the acted-on manager notification is closed. All of
// it commits in one transaction.
type ReassignDriverCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	notifier    ports.Notifier
}

// NewReassignDriverCommandHandler creates a handler for driver reassignment operations.
func NewReassignDriverCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
) ReassignDriverCommandHandler {
	return ReassignDriverCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
		notifier:    notifier,
	}
}

// Handle processes the reassignment command. The referenced notification must
// be a manager-facing driver_declined message; anything else reads as the
// target not existing, so the caller gets ObjectNotFoundError.
func (h ReassignDriverCommandHandler) Handle(ctx context.Context, cmd ReassignDriverCommand) error {
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

	declineNotice, err := uow.NotificationRepository().Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}
	if declineNotice.Kind() != notification.DriverDeclined {
		return errs.NewObjectNotFoundError("driverDeclinedNotification", cmd.NotificationID().String())
	}

	newOffer, err := reoffer(ctx, uow, h.coordinator, reofferParams{
		tripID:      declineNotice.TripID(),
		newDriverID: cmd.NewDriverID(),
		vehicleID:   cmd.VehicleID(),
		kind:        notification.ReassignDriver,
		assignedBy:  recipientID(declineNotice.Recipient()),
	})
	if err != nil {
		return err
	}

	if err = declineNotice.MarkReassigned(); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Update(ctx, declineNotice); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Notify(ctx, newOffer)
	return nil
}

// reofferParams carries the inputs shared by the two reassignment paths.
type reofferParams struct {
	tripID      kernel.UUID
	newDriverID kernel.UUID
	vehicleID   kernel.UUID
	kind        notification.Kind
	assignedBy  *kernel.UUID
}

// reoffer applies the reassignment fan-out and creates the fresh driver
// offer. Shared by ReassignDriverCommandHandler and ReassignTripCommandHandler.
func reoffer(
	ctx context.Context,
	uow UoW,
	coordinator services.AssignmentCoordinator,
	params reofferParams,
) (*notification.Notification, error) {
	loadedTrip, err := uow.TripRepository().Get(ctx, params.tripID)
	if err != nil {
		return nil, err
	}

	newDriver, err := uow.DriverRepository().Get(ctx, params.newDriverID)
	if err != nil {
		return nil, err
	}

	loadedVehicle, err := uow.VehicleRepository().Get(ctx, params.vehicleID)
	if err != nil {
		return nil, err
	}

	loadedParcels, err := uow.ParcelRepository().GetByIDs(ctx, loadedTrip.ParcelIDs())
	if err != nil {
		return nil, err
	}

	if err = ensureNoPendingOffer(ctx, uow, params.tripID); err != nil {
		return nil, err
	}

	if err = coordinator.Reassign(loadedTrip, newDriver, loadedVehicle, loadedParcels); err != nil {
		return nil, err
	}
	if err = loadedVehicle.Reserve(); err != nil {
		return nil, err
	}

	driverRecipient, err := notification.NewDriverRecipient(params.newDriverID)
	if err != nil {
		return nil, err
	}

	newOffer, err := notification.NewNotification(
		kernel.NewUUID(),
		driverRecipient,
		params.tripID,
		params.vehicleID,
		loadedTrip.ParcelIDs(),
		params.kind,
		"trip re-offered after reassignment",
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	if params.assignedBy != nil {
		if err = newOffer.SetAssignedBy(*params.assignedBy); err != nil {
			return nil, err
		}
	}

	if err = uow.TripRepository().Update(ctx, loadedTrip); err != nil {
		return nil, err
	}
	if err = uow.DriverRepository().Update(ctx, newDriver); err != nil {
		return nil, err
	}
	if err = uow.VehicleRepository().Update(ctx, loadedVehicle); err != nil {
		return nil, err
	}
	for _, loadedParcel := range loadedParcels {
		if err = uow.ParcelRepository().Update(ctx, loadedParcel); err != nil {
			return nil, err
		}
	}
	if err = uow.NotificationRepository().Add(ctx, newOffer); err != nil {
		return nil, err
	}

	return newOffer, nil
}

// ensureNoPendingOffer guards the at-most-one-pending-offer invariant before
// a new driver offer is created.
func ensureNoPendingOffer(ctx context.Context, uow UoW, tripID kernel.UUID) error {
	existing, err := uow.NotificationRepository().GetPendingDriverOfferForTrip(ctx, tripID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("trip already has a pending driver offer")
	}
	return nil
}

func recipientID(r notification.Recipient) *kernel.UUID {
	id := r.RecipientID()
	return &id
}
