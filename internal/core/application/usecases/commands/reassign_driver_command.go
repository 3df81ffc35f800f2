package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrReassignDriverCommandIsNotConstructed = errors.New(
	"ReassignDriverCommand must be created via NewReassignDriverCommand constructor",
)

// ReassignDriverCommand represents a manager acting on a driver_declined
// notification: the trip is re-offered to a new driver with the given
// vehicle.
type ReassignDriverCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	newDriverID    kernel.UUID
	vehicleID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignDriverCommand creates a command to re-offer a declined trip.
func NewReassignDriverCommand(
	notificationID kernel.UUID,
	newDriverID kernel.UUID,
	vehicleID kernel.UUID,
) (ReassignDriverCommand, error) {
	command := ReassignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setNotificationID(notificationID),
		command.setNewDriverID(newDriverID),
		command.setVehicleID(vehicleID),
	); err != nil {
		return ReassignDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReassignDriverCommandIsNotConstructed if validation fails.
func (c ReassignDriverCommand) Validate() error {
	return c.guard.Validate(ErrReassignDriverCommandIsNotConstructed)
}

// NotificationID returns the driver_declined manager notification being acted on.
func (c ReassignDriverCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// NewDriverID returns the driver the trip is re-offered to.
func (c ReassignDriverCommand) NewDriverID() kernel.UUID {
	return c.newDriverID
}

// VehicleID returns the vehicle for the re-offer.
func (c ReassignDriverCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c *ReassignDriverCommand) setNotificationID(notificationID kernel.UUID) error {
	if err := notificationID.Validate(); err != nil {
		return err
	}

	c.notificationID = notificationID
	return nil
}

func (c *ReassignDriverCommand) setNewDriverID(newDriverID kernel.UUID) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}

	c.newDriverID = newDriverID
	return nil
}

func (c *ReassignDriverCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}
