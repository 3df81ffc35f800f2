package commands

import (
	"errors"

	"fleet/internal/pkg/guard"
)

var ErrExpireNotificationsCommandIsNotConstructed = errors.New(
	"ExpireNotificationsCommand must be created via NewExpireNotificationsCommand constructor",
)

// ExpireNotificationsCommand triggers the sweep that closes pending
// notifications whose 24-hour window elapsed. Read paths already filter
// expired rows out; the sweep only settles their stored status.
type ExpireNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireNotificationsCommand creates a new command to trigger the expiry sweep.
func NewExpireNotificationsCommand() ExpireNotificationsCommand {
	return ExpireNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireNotificationsCommandIsNotConstructed if validation fails.
func (c *ExpireNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireNotificationsCommandIsNotConstructed)
}
