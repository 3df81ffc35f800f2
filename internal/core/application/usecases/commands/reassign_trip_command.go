package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrReassignTripCommandIsNotConstructed = errors.New(
	"ReassignTripCommand must be created via NewReassignTripCommand constructor",
)

// ReassignTripCommand represents a direct manager re-route of a trip to a new
// driver and vehicle, independent of a prior decline.
type ReassignTripCommand struct { //nolint:recvcheck //using for validation
	tripID       kernel.UUID
	newDriverID  kernel.UUID
	newVehicleID kernel.UUID
	managerID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignTripCommand creates a command to re-route a trip.
func NewReassignTripCommand(
	tripID kernel.UUID,
	newDriverID kernel.UUID,
	newVehicleID kernel.UUID,
	managerID kernel.UUID,
) (ReassignTripCommand, error) {
	command := ReassignTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTripID(tripID),
		command.setNewDriverID(newDriverID),
		command.setNewVehicleID(newVehicleID),
		command.setManagerID(managerID),
	); err != nil {
		return ReassignTripCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReassignTripCommandIsNotConstructed if validation fails.
func (c ReassignTripCommand) Validate() error {
	return c.guard.Validate(ErrReassignTripCommandIsNotConstructed)
}

// TripID returns the trip being re-routed.
func (c ReassignTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// NewDriverID returns the driver the trip is re-offered to.
func (c ReassignTripCommand) NewDriverID() kernel.UUID {
	return c.newDriverID
}

// NewVehicleID returns the vehicle for the re-offer.
func (c ReassignTripCommand) NewVehicleID() kernel.UUID {
	return c.newVehicleID
}

// ManagerID returns the manager performing the re-route.
func (c ReassignTripCommand) ManagerID() kernel.UUID {
	return c.managerID
}

func (c *ReassignTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ReassignTripCommand) setNewDriverID(newDriverID kernel.UUID) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}

	c.newDriverID = newDriverID
	return nil
}

func (c *ReassignTripCommand) setNewVehicleID(newVehicleID kernel.UUID) error {
	if err := newVehicleID.Validate(); err != nil {
		return err
	}

	c.newVehicleID = newVehicleID
	return nil
}

func (c *ReassignTripCommand) setManagerID(managerID kernel.UUID) error {
	if err := managerID.Validate(); err != nil {
		return err
	}

	c.managerID = managerID
	return nil
}
