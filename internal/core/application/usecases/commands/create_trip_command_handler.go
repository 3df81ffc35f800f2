package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// CreateTripCommandHandler handles the business logic for trip creation. The
// new trip starts Pending with its route built from the command's
// destinations; the vehicle is reserved and every parcel is attached to the
// trip within the same transaction.
//
// The offer notification itself is a separate step (OfferTripCommand), so a
// trip can be created and offered in one request or re-offered later without
// duplicating trip setup.
type CreateTripCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateTripCommandHandler creates a handler for trip creation operations.
func NewCreateTripCommandHandler(uowFactory UoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the trip creation command. Fails with ObjectNotFoundError
// when the driver, vehicle, or any parcel does not exist and ConflictError on
// a duplicate trip id.
func (h CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
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

	if _, err := uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return err
	}

	vehicle, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	parcels, err := uow.ParcelRepository().GetByIDs(ctx, cmd.ParcelIDs())
	if err != nil {
		return err
	}

	destinations, err := buildDestinations(cmd.Destinations())
	if err != nil {
		return err
	}

	newTrip, err := trip.NewTrip(
		cmd.TripID(),
		cmd.DriverID(),
		cmd.VehicleID(),
		cmd.ParcelIDs(),
		destinations,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = vehicle.Reserve(); err != nil {
		return err
	}

	for _, p := range parcels {
		if err = p.AttachToTrip(cmd.TripID(), cmd.DriverID(), cmd.VehicleID()); err != nil {
			return err
		}
	}

	if err = uow.TripRepository().Add(ctx, newTrip); err != nil {
		return err
	}
	if err = uow.VehicleRepository().Update(ctx, vehicle); err != nil {
		return err
	}
	for _, p := range parcels {
		if err = uow.ParcelRepository().Update(ctx, p); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func buildDestinations(data []DestinationData) ([]*trip.DeliveryDestination, error) {
	destinations := make([]*trip.DeliveryDestination, 0, len(data))
	for _, d := range data {
		coordinates, err := kernel.NewGeoPoint(d.Latitude, d.Longitude)
		if err != nil {
			return nil, err
		}

		dest, err := trip.NewDeliveryDestination(d.ParcelID, coordinates, d.LocationName, d.Order)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, dest)
	}
	return destinations, nil
}
