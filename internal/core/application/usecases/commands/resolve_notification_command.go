package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrResolveNotificationCommandIsNotConstructed = errors.New(
	"ResolveNotificationCommand must be created via NewResolveNotificationCommand constructor",
)

// Decision is the recipient's answer to a pending offer.
type Decision string

const (
	// DecisionAccepted accepts the offered trip.
	DecisionAccepted Decision = "accepted"
	// DecisionDeclined refuses the offered trip.
	DecisionDeclined Decision = "declined"
)

// ResolveNotificationCommand represents a driver's answer to a pending trip
// offer. Resolving the notification drives the full assignment fan-out across
// the trip, driver, vehicle, and parcel records.
type ResolveNotificationCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	decision       Decision

	guard guard.ConstructorGuard
}

// NewResolveNotificationCommand creates a command to resolve a pending offer.
// The decision must be "accepted" or "declined".
func NewResolveNotificationCommand(
	notificationID kernel.UUID,
	decision Decision,
) (ResolveNotificationCommand, error) {
	command := ResolveNotificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setNotificationID(notificationID),
		command.setDecision(decision),
	); err != nil {
		return ResolveNotificationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResolveNotificationCommandIsNotConstructed if validation fails.
func (c ResolveNotificationCommand) Validate() error {
	return c.guard.Validate(ErrResolveNotificationCommandIsNotConstructed)
}

// NotificationID returns the notification being resolved.
func (c ResolveNotificationCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// Decision returns the recipient's answer.
func (c ResolveNotificationCommand) Decision() Decision {
	return c.decision
}

func (c *ResolveNotificationCommand) setNotificationID(notificationID kernel.UUID) error {
	if err := notificationID.Validate(); err != nil {
		return err
	}

	c.notificationID = notificationID
	return nil
}

func (c *ResolveNotificationCommand) setDecision(decision Decision) error {
	if decision != DecisionAccepted && decision != DecisionDeclined {
		return errs.NewValueIsInvalidError("decision")
	}

	c.decision = decision
	return nil
}
