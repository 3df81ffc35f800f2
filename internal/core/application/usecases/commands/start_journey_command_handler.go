package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/services"
)

// StartJourneyCommandHandler handles the journey-start transition: the trip
// goes in progress with every destination in transit, and the driver,
// vehicle, and parcels follow. The trip must be accepted; nothing is written
// otherwise.
type StartJourneyCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
}

// NewStartJourneyCommandHandler creates a handler for journey-start operations.
func NewStartJourneyCommandHandler(uowFactory UoWFactory) StartJourneyCommandHandler {
	return StartJourneyCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
	}
}

// Handle processes the journey-start command. Fails with ObjectNotFoundError
// if the trip is missing and InvalidStateError if it is not accepted.
func (h StartJourneyCommandHandler) Handle(ctx context.Context, cmd StartJourneyCommand) error {
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

	participants, err := loadParticipants(ctx, uow, cmd.TripID())
	if err != nil {
		return err
	}

	if err = h.coordinator.Start(
		participants.trip,
		participants.driver,
		participants.vehicle,
		participants.parcels,
		time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = persistParticipants(ctx, uow, participants); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
