package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/services"
)

// UpdateTripStatusCommandHandler handles the administrative override path.
// The trip is forced into the requested status and the driver and vehicle
// follow the same side-effect table as the regular transitions, so the
// cross-entity invariants survive a manual correction.
type UpdateTripStatusCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.AssignmentCoordinator
}

// NewUpdateTripStatusCommandHandler creates a handler for status override operations.
func NewUpdateTripStatusCommandHandler(uowFactory UoWFactory) UpdateTripStatusCommandHandler {
	return UpdateTripStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewAssignmentCoordinator(),
	}
}

// Handle processes the override command.
// Returns ObjectNotFoundError if the trip does not exist.
func (h UpdateTripStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTripStatusCommand) error {
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

	if err = h.coordinator.Override(
		participants.trip,
		participants.driver,
		participants.vehicle,
		participants.parcels,
		cmd.NewStatus(),
		time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = persistParticipants(ctx, uow, participants); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
