package trip

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	// ErrLocationNameIsRequired is returned when a destination lacks a location name.
	ErrLocationNameIsRequired = errs.NewValueIsRequiredError("locationName")
	// ErrDestinationIsNotConstructed is returned when using an improperly initialized DeliveryDestination.
	ErrDestinationIsNotConstructed = errors.New(
		"DeliveryDestination must be created via NewDeliveryDestination constructor",
	)
)

// DeliveryDestination is one stop within a trip's route, tied to exactly one
// parcel. It is a child entity of the Trip aggregate and is only mutated
// through the Trip's methods.
type DeliveryDestination struct {
	// parcelID is the parcel delivered at this stop
	parcelID kernel.UUID
	// coordinates is the drop-off point
	coordinates kernel.GeoPoint
	// locationName is the human-readable address or place name
	locationName string
	// order is the 1-based position of the stop within the route
	order int
	// deliveryStatus is the state of this stop, independent of the trip status
	deliveryStatus DeliveryStatus
	// deliveredAt is stamped when the stop reaches Delivered
	deliveredAt *time.Time
	// notes carries driver remarks for the stop
	notes string
	// guard ensures the destination was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryDestination creates a destination in DeliveryPending status.
// The order is the 1-based position of the stop within the route.
func NewDeliveryDestination(
	parcelID kernel.UUID,
	coordinates kernel.GeoPoint,
	locationName string,
	order int,
) (*DeliveryDestination, error) {
	dest := &DeliveryDestination{
		deliveryStatus: DeliveryPending,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dest.setParcelID(parcelID),
		dest.setCoordinates(coordinates),
		dest.setLocationName(locationName),
		dest.setOrder(order),
	); err != nil {
		return nil, err
	}

	return dest, nil
}

// RestoreDeliveryDestination reconstructs a destination from persistent storage.
func RestoreDeliveryDestination(
	parcelID kernel.UUID,
	coordinates kernel.GeoPoint,
	locationName string,
	order int,
	deliveryStatus DeliveryStatus,
	deliveredAt *time.Time,
	notes string,
) (*DeliveryDestination, error) {
	dest := &DeliveryDestination{
		deliveredAt: deliveredAt,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dest.setParcelID(parcelID),
		dest.setCoordinates(coordinates),
		dest.setLocationName(locationName),
		dest.setOrder(order),
		dest.setDeliveryStatus(deliveryStatus),
	); err != nil {
		return nil, err
	}

	return dest, nil
}

// Validate checks if the destination was properly constructed. The zero value is invalid.
func (d *DeliveryDestination) Validate() error {
	if d == nil {
		return ErrDestinationIsNotConstructed
	}
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

// ParcelID returns the parcel delivered at this stop.
func (d *DeliveryDestination) ParcelID() kernel.UUID {
	return d.parcelID
}

// Coordinates returns the drop-off point.
func (d *DeliveryDestination) Coordinates() kernel.GeoPoint {
	return d.coordinates
}

// LocationName returns the human-readable place name.
func (d *DeliveryDestination) LocationName() string {
	return d.locationName
}

// Order returns the 1-based position of the stop within the route.
func (d *DeliveryDestination) Order() int {
	return d.order
}

// DeliveryStatus returns the state of this stop.
func (d *DeliveryDestination) DeliveryStatus() DeliveryStatus {
	return d.deliveryStatus
}

// DeliveredAt returns the hand-off timestamp, nil until delivered.
func (d *DeliveryDestination) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// Notes returns driver remarks for the stop.
func (d *DeliveryDestination) Notes() string {
	return d.notes
}

// markInTransit flags the stop as on the road when the journey starts.
func (d *DeliveryDestination) markInTransit() {
	d.deliveryStatus = DeliveryInTransit
}

// updateStatus applies a delivery status change with optional notes, stamping
// deliveredAt when the stop reaches Delivered. A finalized stop cannot change.
func (d *DeliveryDestination) updateStatus(newStatus DeliveryStatus, notes string, now time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if d.deliveryStatus.IsFinal() {
		return errs.NewInvalidStateError(
			"delivery destination already reached a final status",
		)
	}

	d.deliveryStatus = newStatus
	if notes != "" {
		d.notes = notes
	}
	if newStatus == Delivered {
		deliveredAt := now
		d.deliveredAt = &deliveredAt
	}
	return nil
}

func (d *DeliveryDestination) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	d.parcelID = parcelID
	return nil
}

func (d *DeliveryDestination) setCoordinates(coordinates kernel.GeoPoint) error {
	if err := coordinates.Validate(); err != nil {
		return err
	}
	d.coordinates = coordinates
	return nil
}

func (d *DeliveryDestination) setLocationName(locationName string) error {
	if locationName == "" {
		return ErrLocationNameIsRequired
	}
	d.locationName = locationName
	return nil
}

func (d *DeliveryDestination) setOrder(order int) error {
	if order <= 0 {
		return errs.NewValueIsOutOfRangeError("order", order, 1, "unbounded")
	}
	d.order = order
	return nil
}

func (d *DeliveryDestination) setDeliveryStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.deliveryStatus = status
	return nil
}
