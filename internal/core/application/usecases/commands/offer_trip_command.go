package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/pkg/guard"
)

var ErrOfferTripCommandIsNotConstructed = errors.New(
	"OfferTripCommand must be created via NewOfferTripCommand constructor",
)

// OfferTripCommand represents a request to create a notification: a trip
// offer to a driver, or an informational message to a manager. The optional
// route details and assigning manager travel with the notification so the
// recipient sees the full offer without extra lookups.
type OfferTripCommand struct { //nolint:recvcheck //using for validation
	recipient         notification.Recipient
	tripID            kernel.UUID
	vehicleID         kernel.UUID
	parcelIDs         []kernel.UUID
	kind              notification.Kind
	message           string
	deliveryLocations []kernel.GeoPoint
	startLocation     *kernel.GeoPoint
	assignedBy        *kernel.UUID

	guard guard.ConstructorGuard
}

// NewOfferTripCommand creates a command to register a new notification.
func NewOfferTripCommand(
	recipient notification.Recipient,
	tripID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	kind notification.Kind,
	message string,
	deliveryLocations []kernel.GeoPoint,
	startLocation *kernel.GeoPoint,
	assignedBy *kernel.UUID,
) (OfferTripCommand, error) {
	command := OfferTripCommand{
		message:           message,
		deliveryLocations: deliveryLocations,
		startLocation:     startLocation,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRecipient(recipient),
		command.setTripID(tripID),
		command.setVehicleID(vehicleID),
		command.setParcelIDs(parcelIDs),
		command.setKind(kind),
		command.setAssignedBy(assignedBy),
	); err != nil {
		return OfferTripCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrOfferTripCommandIsNotConstructed if validation fails.
func (c OfferTripCommand) Validate() error {
	return c.guard.Validate(ErrOfferTripCommandIsNotConstructed)
}

// Recipient returns the addressed driver or manager.
func (c OfferTripCommand) Recipient() notification.Recipient {
	return c.recipient
}

// TripID returns the offered trip.
func (c OfferTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// VehicleID returns the vehicle attached to the offer.
func (c OfferTripCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// ParcelIDs returns the parcels attached to the offer.
func (c OfferTripCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

// Kind returns the business classification of the notification.
func (c OfferTripCommand) Kind() notification.Kind {
	return c.kind
}

// Message returns the optional display text.
func (c OfferTripCommand) Message() string {
	return c.message
}

// DeliveryLocations returns the offered route's stops, if provided.
func (c OfferTripCommand) DeliveryLocations() []kernel.GeoPoint {
	return c.deliveryLocations
}

// StartLocation returns the offered route's origin, if provided.
func (c OfferTripCommand) StartLocation() *kernel.GeoPoint {
	return c.startLocation
}

// AssignedBy returns the manager who created the offer, nil if none.
func (c OfferTripCommand) AssignedBy() *kernel.UUID {
	return c.assignedBy
}

func (c *OfferTripCommand) setRecipient(recipient notification.Recipient) error {
	if recipient == nil {
		return notification.ErrRecipientIsRequired
	}
	if err := recipient.Validate(); err != nil {
		return err
	}

	c.recipient = recipient
	return nil
}

func (c *OfferTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *OfferTripCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *OfferTripCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.parcelIDs = parcelIDs
	return nil
}

func (c *OfferTripCommand) setKind(kind notification.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *OfferTripCommand) setAssignedBy(assignedBy *kernel.UUID) error {
	if assignedBy == nil {
		return nil
	}
	if err := assignedBy.Validate(); err != nil {
		return err
	}

	c.assignedBy = assignedBy
	return nil
}
