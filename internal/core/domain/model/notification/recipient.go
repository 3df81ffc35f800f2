package notification

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
)

var (
	// ErrRecipientIsRequired is returned when a notification lacks a recipient.
	ErrRecipientIsRequired = errors.New("recipient is required")
)

// Recipient is the tagged union of the two parties a notification can be
// directed at. A notification addresses exactly one driver or exactly one
// manager, never both; consumers branch with a type switch instead of
// comparing recipient-type strings.
type Recipient interface {
	// RecipientID returns the identifier of the addressed party.
	RecipientID() kernel.UUID

	// Validate checks the recipient's identifier.
	Validate() error

	// isRecipient seals the union.
	isRecipient()
}

// DriverRecipient addresses a notification to a driver.
type DriverRecipient struct {
	driverID kernel.UUID
}

// NewDriverRecipient creates a driver recipient.
func NewDriverRecipient(driverID kernel.UUID) (DriverRecipient, error) {
	if err := driverID.Validate(); err != nil {
		return DriverRecipient{}, err
	}
	return DriverRecipient{driverID: driverID}, nil
}

// RecipientID returns the driver's identifier.
func (r DriverRecipient) RecipientID() kernel.UUID {
	return r.driverID
}

// Validate checks the driver identifier.
func (r DriverRecipient) Validate() error {
	return r.driverID.Validate()
}

func (DriverRecipient) isRecipient() {}

// ManagerRecipient addresses a notification to a manager.
type ManagerRecipient struct {
	managerID kernel.UUID
}

// NewManagerRecipient creates a manager recipient.
func NewManagerRecipient(managerID kernel.UUID) (ManagerRecipient, error) {
	if err := managerID.Validate(); err != nil {
		return ManagerRecipient{}, err
	}
	return ManagerRecipient{managerID: managerID}, nil
}

// RecipientID returns the manager's identifier.
func (r ManagerRecipient) RecipientID() kernel.UUID {
	return r.managerID
}

// Validate checks the manager identifier.
func (r ManagerRecipient) Validate() error {
	return r.managerID.Validate()
}

func (ManagerRecipient) isRecipient() {}
