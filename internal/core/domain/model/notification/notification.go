package notification

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

// TTL is the window within which a notification remains active. Queries for
// active notifications filter on it at read time; the expiry job only sweeps
// rows that already fell out of that filter.
const TTL = 24 * time.Hour

// ErrNotificationIsNotConstructed is returned when using an improperly initialized Notification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification constructor",
)

// Notification is a persisted, TTL-bound offer or informational message
// directed at a driver or manager. It is an aggregate root created by the
// assignment workflow on every offer and re-offer; after creation only its
// status and read flag change.
type Notification struct {
	// id uniquely identifies the notification
	id kernel.UUID
	// recipient is the addressed driver or manager
	recipient Recipient
	// tripID, vehicleID, and parcelIDs reference the offered trip
	tripID    kernel.UUID
	vehicleID kernel.UUID
	parcelIDs []kernel.UUID
	// kind classifies the business meaning of the message
	kind Kind
	// status is the resolution state
	status Status
	// read reports whether the recipient has seen the notification
	read bool
	// message is optional display text
	message string
	// createdAt and expiresAt bound the active window (expiresAt = createdAt + TTL)
	createdAt time.Time
	expiresAt time.Time
	// deliveryLocations and startLocation describe the offered route
	deliveryLocations []kernel.GeoPoint
	startLocation     *kernel.GeoPoint
	// declinedDriverID identifies the declining driver on driver_declined messages
	declinedDriverID *kernel.UUID
	// assignedBy identifies the manager who created the offer, if any
	assignedBy *kernel.UUID
	// version supports optimistic concurrency at the persistence boundary
	version int
	// guard ensures the notification was properly constructed
	guard guard.ConstructorGuard
}

// NewNotification creates a pending, unread notification whose expiry is
// createdAt plus TTL.
func NewNotification(
	id kernel.UUID,
	recipient Recipient,
	tripID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	kind Kind,
	message string,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		status:    Pending,
		message:   message,
		createdAt: createdAt,
		expiresAt: createdAt.Add(TTL),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipient(recipient),
		n.setTripID(tripID),
		n.setVehicleID(vehicleID),
		n.setParcelIDs(parcelIDs),
		n.setKind(kind),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a Notification aggregate from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	recipient Recipient,
	tripID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	kind Kind,
	status Status,
	read bool,
	message string,
	createdAt time.Time,
	expiresAt time.Time,
	deliveryLocations []kernel.GeoPoint,
	startLocation *kernel.GeoPoint,
	declinedDriverID *kernel.UUID,
	assignedBy *kernel.UUID,
	version int,
) (*Notification, error) {
	n := &Notification{
		read:              read,
		message:           message,
		createdAt:         createdAt,
		expiresAt:         expiresAt,
		deliveryLocations: deliveryLocations,
		startLocation:     startLocation,
		declinedDriverID:  declinedDriverID,
		assignedBy:        assignedBy,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipient(recipient),
		n.setTripID(tripID),
		n.setVehicleID(vehicleID),
		n.setParcelIDs(parcelIDs),
		n.setKind(kind),
		n.setStatus(status),
		n.setVersion(version),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification was properly constructed. The zero value is invalid.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// IsEqual compares two notifications by their unique identifiers.
func (n *Notification) IsEqual(other *Notification) bool {
	return other != nil && n.id.IsEqual(other.id)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// Recipient returns the addressed driver or manager.
func (n *Notification) Recipient() Recipient {
	return n.recipient
}

// TripID returns the referenced trip.
func (n *Notification) TripID() kernel.UUID {
	return n.tripID
}

// VehicleID returns the referenced vehicle.
func (n *Notification) VehicleID() kernel.UUID {
	return n.vehicleID
}

// ParcelIDs returns the referenced parcels.
func (n *Notification) ParcelIDs() []kernel.UUID {
	return n.parcelIDs
}

// Kind returns the business classification of the message.
func (n *Notification) Kind() Kind {
	return n.kind
}

// Status returns the resolution state.
func (n *Notification) Status() Status {
	return n.status
}

// IsRead reports whether the recipient has seen the notification.
func (n *Notification) IsRead() bool {
	return n.read
}

// Message returns the optional display text.
func (n *Notification) Message() string {
	return n.message
}

// CreatedAt returns when the notification was created.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ExpiresAt returns the end of the active window.
func (n *Notification) ExpiresAt() time.Time {
	return n.expiresAt
}

// DeliveryLocations returns the offered route's stops, if attached.
func (n *Notification) DeliveryLocations() []kernel.GeoPoint {
	return n.deliveryLocations
}

// StartLocation returns the offered route's origin, if attached.
func (n *Notification) StartLocation() *kernel.GeoPoint {
	return n.startLocation
}

// DeclinedDriverID returns the declining driver on driver_declined messages.
func (n *Notification) DeclinedDriverID() *kernel.UUID {
	return n.declinedDriverID
}

// AssignedBy returns the manager who created the offer, nil if none.
func (n *Notification) AssignedBy() *kernel.UUID {
	return n.assignedBy
}

// Version returns the optimistic-concurrency version loaded from storage.
func (n *Notification) Version() int {
	return n.version
}

// IsExpired reports whether the active window has elapsed at the given time.
func (n *Notification) IsExpired(now time.Time) bool {
	return !n.expiresAt.After(now)
}

// AttachRoute sets the optional route details shown to the recipient.
func (n *Notification) AttachRoute(deliveryLocations []kernel.GeoPoint, startLocation *kernel.GeoPoint) error {
	for _, loc := range deliveryLocations {
		if err := loc.Validate(); err != nil {
			return err
		}
	}
	if startLocation != nil {
		if err := startLocation.Validate(); err != nil {
			return err
		}
	}
	n.deliveryLocations = deliveryLocations
	n.startLocation = startLocation
	return nil
}

// SetAssignedBy records the manager who created the offer.
func (n *Notification) SetAssignedBy(managerID kernel.UUID) error {
	if err := managerID.Validate(); err != nil {
		return err
	}
	n.assignedBy = &managerID
	return nil
}

// SetDeclinedDriver records the declining driver on a driver_declined message.
func (n *Notification) SetDeclinedDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	n.declinedDriverID = &driverID
	return nil
}

// MarkRead flags the notification as seen by its recipient.
func (n *Notification) MarkRead() {
	n.read = true
}

// Accept resolves a pending offer as accepted and marks it read.
func (n *Notification) Accept() error {
	newStatus, err := n.status.resolve(Accepted)
	if err != nil {
		return err
	}

	n.status = newStatus
	n.read = true
	return nil
}

// Decline resolves a pending offer as declined and marks it read.
func (n *Notification) Decline() error {
	newStatus, err := n.status.resolve(Declined)
	if err != nil {
		return err
	}

	n.status = newStatus
	n.read = true
	return nil
}

// MarkReassigned records that a manager acted on this driver_declined
// notification by re-offering the trip. Marks the notification read.
func (n *Notification) MarkReassigned() error {
	newStatus, err := n.status.resolve(Reassigned)
	if err != nil {
		return err
	}

	n.status = newStatus
	n.read = true
	return nil
}

// MarkExpired resolves a pending notification whose window elapsed.
func (n *Notification) MarkExpired(now time.Time) error {
	if !n.IsExpired(now) {
		return errs.NewInvalidStateError("notification has not expired yet")
	}

	newStatus, err := n.status.resolve(Expired)
	if err != nil {
		return err
	}

	n.status = newStatus
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipient(recipient Recipient) error {
	if recipient == nil {
		return ErrRecipientIsRequired
	}
	if err := recipient.Validate(); err != nil {
		return err
	}
	n.recipient = recipient
	return nil
}

func (n *Notification) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	n.tripID = tripID
	return nil
}

func (n *Notification) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	n.vehicleID = vehicleID
	return nil
}

func (n *Notification) setParcelIDs(parcelIDs []kernel.UUID) error {
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	n.parcelIDs = parcelIDs
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}

func (n *Notification) setVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError(
			"notification version", errors.New("version is not positive"))
	}
	n.version = version
	return nil
}
