package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/model/parcel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// ResolveNotificationCommandHandler orchestrates the accept/decline fan-out.
// Loads the notification and every aggregate the transition touches, lets the
// AssignmentCoordinator apply the state changes, and persists them within one
// transaction. A decline on a manager-placed offer additionally creates the
// driver_declined notification for that manager.
//
// Two concurrent resolutions of the same offer cannot both succeed: the
// notification row carries an optimistic version, so the second commit fails
// with ConflictError.
type ResolveNotificationCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
	notifier    ports.Notifier
}

// NewResolveNotificationCommandHandler creates a handler for offer resolution operations.
func NewResolveNotificationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
) ResolveNotificationCommandHandler {
	return ResolveNotificationCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
		notifier:    notifier,
	}
}

// Handle processes the resolution command. Fails with ObjectNotFoundError if
// the notification is missing and InvalidStateError if it is not pending or
// not addressed to a driver.
func (h ResolveNotificationCommandHandler) Handle(ctx context.Context, cmd ResolveNotificationCommand) error {
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

	offer, err := uow.NotificationRepository().Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if _, ok := offer.Recipient().(notification.DriverRecipient); !ok {
		return errs.NewInvalidStateError("only driver offers can be accepted or declined")
	}
	if offer.IsExpired(time.Now().UTC()) {
		return errs.NewInvalidStateError("notification has expired")
	}

	participants, err := loadParticipants(ctx, uow, offer.TripID())
	if err != nil {
		return err
	}

	declined, err := h.applyDecision(cmd.Decision(), offer, participants)
	if err != nil {
		return err
	}

	var managerNotification *notification.Notification
	if declined && offer.AssignedBy() != nil {
		managerNotification, err = buildDeclinedNotice(offer, participants.driver.ID(), time.Now().UTC())
		if err != nil {
			return err
		}
		if err = uow.NotificationRepository().Add(ctx, managerNotification); err != nil {
			return err
		}
	}

	if err = persistParticipants(ctx, uow, participants); err != nil {
		return err
	}
	if err = uow.NotificationRepository().Update(ctx, offer); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if managerNotification != nil {
		_ = h.notifier.Notify(ctx, managerNotification)
	}
	return nil
}

func (h ResolveNotificationCommandHandler) applyDecision(
	decision Decision,
	offer *notification.Notification,
	p *tripParticipants,
) (declined bool, err error) {
	switch decision {
	case DecisionAccepted:
		if err = h.coordinator.Accept(p.trip, p.driver, p.vehicle, p.parcels, time.Now().UTC()); err != nil {
			return false, err
		}
		return false, offer.Accept()
	case DecisionDeclined:
		if err = h.coordinator.Decline(p.trip, p.driver, p.vehicle, p.parcels); err != nil {
			return false, err
		}
		return true, offer.Decline()
	default:
		return false, errs.NewValueIsInvalidError("decision")
	}
}

// buildDeclinedNotice creates the manager-facing driver_declined notification
// carrying the same trip references as the refused offer.
func buildDeclinedNotice(
	offer *notification.Notification,
	declinedDriverID kernel.UUID,
	now time.Time,
) (*notification.Notification, error) {
	manager, err := notification.NewManagerRecipient(*offer.AssignedBy())
	if err != nil {
		return nil, err
	}

	notice, err := notification.NewNotification(
		kernel.NewUUID(),
		manager,
		offer.TripID(),
		offer.VehicleID(),
		offer.ParcelIDs(),
		notification.DriverDeclined,
		"driver declined the trip offer",
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = notice.SetDeclinedDriver(declinedDriverID); err != nil {
		return nil, err
	}
	return notice, nil
}

// tripParticipants bundles the aggregates every assignment transition fans
// out to.
type tripParticipants struct {
	trip    *trip.Trip
	driver  *driver.Driver
	vehicle *vehicle.Vehicle
	parcels []*parcel.Parcel
}

// loadParticipants fetches the trip and the driver, vehicle, and parcels it
// references.
func loadParticipants(ctx context.Context, uow UoW, tripID kernel.UUID) (*tripParticipants, error) {
	loadedTrip, err := uow.TripRepository().Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	loadedDriver, err := uow.DriverRepository().Get(ctx, loadedTrip.DriverID())
	if err != nil {
		return nil, err
	}

	loadedVehicle, err := uow.VehicleRepository().Get(ctx, loadedTrip.VehicleID())
	if err != nil {
		return nil, err
	}

	loadedParcels, err := uow.ParcelRepository().GetByIDs(ctx, loadedTrip.ParcelIDs())
	if err != nil {
		return nil, err
	}

	return &tripParticipants{
		trip:    loadedTrip,
		driver:  loadedDriver,
		vehicle: loadedVehicle,
		parcels: loadedParcels,
	}, nil
}

// persistParticipants writes every aggregate of the fan-out back through the
// unit of work.
func persistParticipants(ctx context.Context, uow UoW, p *tripParticipants) error {
	if err := uow.TripRepository().Update(ctx, p.trip); err != nil {
		return err
	}
	if err := uow.DriverRepository().Update(ctx, p.driver); err != nil {
		return err
	}
	if err := uow.VehicleRepository().Update(ctx, p.vehicle); err != nil {
		return err
	}
	for _, loadedParcel := range p.parcels {
		if err := uow.ParcelRepository().Update(ctx, loadedParcel); err != nil {
			return err
		}
	}
	return nil
}
