package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/guard"
)

var ErrUpdateTripStatusCommandIsNotConstructed = errors.New(
	"UpdateTripStatusCommand must be created via NewUpdateTripStatusCommand constructor",
)

// UpdateTripStatusCommand represents an administrative status override for a
// trip, used for direct corrections outside the regular transitions.
type UpdateTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID    kernel.UUID
	newStatus trip.Status

	guard guard.ConstructorGuard
}

// NewUpdateTripStatusCommand creates a command to override a trip's status.
func NewUpdateTripStatusCommand(tripID kernel.UUID, newStatus trip.Status) (UpdateTripStatusCommand, error) {
	command := UpdateTripStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTripID(tripID),
		command.setNewStatus(newStatus),
	); err != nil {
		return UpdateTripStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateTripStatusCommandIsNotConstructed if validation fails.
func (c UpdateTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTripStatusCommandIsNotConstructed)
}

// TripID returns the trip being corrected.
func (c UpdateTripStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

// NewStatus returns the status to force the trip into.
func (c UpdateTripStatusCommand) NewStatus() trip.Status {
	return c.newStatus
}

func (c *UpdateTripStatusCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *UpdateTripStatusCommand) setNewStatus(newStatus trip.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
