package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrStartJourneyCommandIsNotConstructed = errors.New(
	"StartJourneyCommand must be created via NewStartJourneyCommand constructor",
)

// StartJourneyCommand represents the driver setting off on an accepted trip.
type StartJourneyCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartJourneyCommand creates a command to start a trip's journey.
func NewStartJourneyCommand(tripID kernel.UUID) (StartJourneyCommand, error) {
	command := StartJourneyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTripID(tripID); err != nil {
		return StartJourneyCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartJourneyCommandIsNotConstructed if validation fails.
func (c StartJourneyCommand) Validate() error {
	return c.guard.Validate(ErrStartJourneyCommandIsNotConstructed)
}

// TripID returns the trip whose journey starts.
func (c StartJourneyCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c *StartJourneyCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}
