package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a progress report for one delivery
// stop of an in-progress trip.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	tripID    kernel.UUID
	parcelID  kernel.UUID
	newStatus trip.DeliveryStatus
	notes     string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to advance one destination.
func NewUpdateDeliveryStatusCommand(
	tripID kernel.UUID,
	parcelID kernel.UUID,
	newStatus trip.DeliveryStatus,
	notes string,
) (UpdateDeliveryStatusCommand, error) {
	command := UpdateDeliveryStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTripID(tripID),
		command.setParcelID(parcelID),
		command.setNewStatus(newStatus),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// TripID returns the trip the destination belongs to.
func (c UpdateDeliveryStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

// ParcelID returns the parcel identifying the destination.
func (c UpdateDeliveryStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewStatus returns the delivery status to set.
func (c UpdateDeliveryStatusCommand) NewStatus() trip.DeliveryStatus {
	return c.newStatus
}

// Notes returns the optional free-form note for the stop.
func (c UpdateDeliveryStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdateDeliveryStatusCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setNewStatus(newStatus trip.DeliveryStatus) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
