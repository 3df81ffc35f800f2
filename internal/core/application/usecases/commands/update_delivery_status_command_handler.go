package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler advances one delivery stop of an
// in-progress trip. A delivered stop also marks its parcel delivered; when
// the update leaves every stop final the trip auto-completes and the driver
// and vehicle are released, all in the same transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery progress operations.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
	}
}

// Handle processes the delivery progress command. Fails with
// ObjectNotFoundError if the trip or the destination for the parcel is
// missing, and InvalidStateError if the trip is not in progress or the stop
// is already final.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	loadedTrip, err := uow.TripRepository().Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	completed, err := loadedTrip.UpdateDelivery(cmd.ParcelID(), cmd.NewStatus(), cmd.Notes(), time.Now().UTC())
	if err != nil {
		return err
	}

	if cmd.NewStatus() == trip.Delivered {
		deliveredParcel, parcelErr := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
		if parcelErr != nil {
			return parcelErr
		}
		if parcelErr = deliveredParcel.MarkDelivered(); parcelErr != nil {
			return parcelErr
		}
		if parcelErr = uow.ParcelRepository().Update(ctx, deliveredParcel); parcelErr != nil {
			return parcelErr
		}
	}

	if completed {
		if err = h.releaseAfterCompletion(ctx, uow, loadedTrip); err != nil {
			return err
		}
	}

	if err = uow.TripRepository().Update(ctx, loadedTrip); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseAfterCompletion returns the trip's driver and vehicle to the
// available pool once the completion rollup fires.
func (h UpdateDeliveryStatusCommandHandler) releaseAfterCompletion(
	ctx context.Context,
	uow UoW,
	completedTrip *trip.Trip,
) error {
	tripDriver, err := uow.DriverRepository().Get(ctx, completedTrip.DriverID())
	if err != nil {
		return err
	}
	tripVehicle, err := uow.VehicleRepository().Get(ctx, completedTrip.VehicleID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Complete(tripDriver, tripVehicle); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, tripDriver); err != nil {
		return err
	}
	return uow.VehicleRepository().Update(ctx, tripVehicle)
}
