// Package queries contains the read side of the CQRS architecture. Query
// handlers bypass the domain model and read projections straight from the
// database.
package queries

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrGetActiveNotificationsQueryIsNotConstructed = errors.New(
	"GetActiveNotificationsQuery must be created via NewGetActiveNotificationsQuery constructor",
)

// RecipientType selects whose notifications the query returns.
type RecipientType string

const (
	// RecipientDriver queries a driver's notifications.
	RecipientDriver RecipientType = "driver"
	// RecipientManager queries a manager's notifications.
	RecipientManager RecipientType = "manager"
)

// GetActiveNotificationsQuery retrieves the active (non-expired)
// notifications of one recipient, newest first. Expired rows never appear
// regardless of their stored status.
type GetActiveNotificationsQuery struct { //nolint:recvcheck //using for validation
	recipientID   kernel.UUID
	recipientType RecipientType

	guard guard.ConstructorGuard
}

// NewGetActiveNotificationsQuery creates a query for one recipient's active notifications.
func NewGetActiveNotificationsQuery(
	recipientID kernel.UUID,
	recipientType RecipientType,
) (GetActiveNotificationsQuery, error) {
	query := GetActiveNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setRecipientID(recipientID),
		query.setRecipientType(recipientType),
	); err != nil {
		return GetActiveNotificationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveNotificationsQueryIsNotConstructed if validation fails.
func (q GetActiveNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveNotificationsQueryIsNotConstructed)
}

// RecipientID returns the queried driver or manager.
func (q GetActiveNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// RecipientType returns whether a driver or a manager is queried.
func (q GetActiveNotificationsQuery) RecipientType() RecipientType {
	return q.recipientType
}

func (q *GetActiveNotificationsQuery) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	q.recipientID = recipientID
	return nil
}

func (q *GetActiveNotificationsQuery) setRecipientType(recipientType RecipientType) error {
	if recipientType != RecipientDriver && recipientType != RecipientManager {
		return errs.NewValueIsInvalidError("recipientType")
	}

	q.recipientType = recipientType
	return nil
}

// GetActiveNotificationsQueryResponse represents one active notification as
// shown to its recipient.
type GetActiveNotificationsQueryResponse struct {
	ID        kernel.UUID
	TripID    kernel.UUID
	VehicleID kernel.UUID
	ParcelIDs []kernel.UUID
	Kind      string
	Status    string
	Read      bool
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}
