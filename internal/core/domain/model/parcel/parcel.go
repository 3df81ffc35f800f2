package parcel

import (
	"errors"
	"fmt"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when using an improperly initialized Parcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Parcel represents a single shippable package. It is an aggregate root whose
// ownership links (trip, driver, vehicle) are mutated exclusively by the
// assignment workflow. A parcel belongs to at most one active trip at a time.
type Parcel struct {
	// id uniquely identifies the parcel
	id kernel.UUID
	// status is the current state in the delivery lifecycle
	status Status
	// tripID is the trip carrying the parcel (nil if unattached)
	tripID *kernel.UUID
	// assignedDriver is the driver responsible for the parcel (nil if none)
	assignedDriver *kernel.UUID
	// assignedVehicle is the vehicle carrying the parcel (nil if none)
	assignedVehicle *kernel.UUID
	// guard ensures the parcel was properly constructed
	guard guard.ConstructorGuard
}

// NewParcel creates a new Parcel in Booked status with no ownership links.
func NewParcel(id kernel.UUID) (*Parcel, error) {
	parcel := &Parcel{
		status: Booked,
		guard:  guard.NewConstructorGuard(),
	}

	if err := parcel.setID(id); err != nil {
		return nil, err
	}

	return parcel, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage.
func RestoreParcel(
	id kernel.UUID,
	status Status,
	tripID *kernel.UUID,
	assignedDriver *kernel.UUID,
	assignedVehicle *kernel.UUID,
) (*Parcel, error) {
	parcel := &Parcel{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setStatus(status),
		parcel.setOptionalRef(&parcel.tripID, tripID),
		parcel.setOptionalRef(&parcel.assignedDriver, assignedDriver),
		parcel.setOptionalRef(&parcel.assignedVehicle, assignedVehicle),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// Validate checks if the Parcel was properly constructed. The zero value is invalid.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// Status returns the parcel's lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// TripID returns the trip carrying the parcel, nil if unattached.
func (p *Parcel) TripID() *kernel.UUID {
	return p.tripID
}

// AssignedDriver returns the responsible driver, nil if none.
func (p *Parcel) AssignedDriver() *kernel.UUID {
	return p.assignedDriver
}

// AssignedVehicle returns the carrying vehicle, nil if none.
func (p *Parcel) AssignedVehicle() *kernel.UUID {
	return p.assignedVehicle
}

// AttachToTrip links the parcel to a newly created trip awaiting driver
// confirmation. Fails if the parcel already belongs to another active trip.
func (p *Parcel) AttachToTrip(tripID, driverID, vehicleID kernel.UUID) error {
	if err := errors.Join(tripID.Validate(), driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	if p.tripID != nil && !p.tripID.IsEqual(tripID) {
		return errs.NewConflictError(
			fmt.Sprintf("parcel %s already belongs to trip %s", p.id, p.tripID),
		)
	}
	if p.status.IsTerminal() {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot join a trip", p.status),
		)
	}

	p.status = Assigned
	p.tripID = &tripID
	p.assignedDriver = &driverID
	p.assignedVehicle = &vehicleID
	return nil
}

// Confirm records the driver's acceptance of the trip carrying this parcel.
func (p *Parcel) Confirm(tripID, driverID, vehicleID kernel.UUID) error {
	if err := errors.Join(tripID.Validate(), driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot be confirmed", p.status),
		)
	}

	p.status = Confirmed
	p.tripID = &tripID
	p.assignedDriver = &driverID
	p.assignedVehicle = &vehicleID
	return nil
}

// ResetToPending clears the driver link after a decline. The vehicle link is
// deliberately untouched: the vehicle stays reserved to the trip.
func (p *Parcel) ResetToPending() error {
	if p.status.IsTerminal() {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot be reset", p.status),
		)
	}

	p.status = Pending
	p.assignedDriver = nil
	return nil
}

// ReassignTo moves ownership to a new driver and vehicle while keeping the
// parcel in Pending until the new driver accepts.
func (p *Parcel) ReassignTo(driverID, vehicleID kernel.UUID) error {
	if err := errors.Join(driverID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot be reassigned", p.status),
		)
	}

	p.status = Pending
	p.assignedDriver = &driverID
	p.assignedVehicle = &vehicleID
	return nil
}

// MarkInTransit flags the parcel as out for delivery when the journey starts.
func (p *Parcel) MarkInTransit() error {
	if p.status.IsTerminal() {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot go in transit", p.status),
		)
	}

	p.status = InTransit
	return nil
}

// MarkDelivered records the final hand-off of the parcel.
func (p *Parcel) MarkDelivered() error {
	if p.status != InTransit {
		return errs.NewInvalidStateError(
			fmt.Sprintf("parcel in status %s cannot be delivered", p.status),
		)
	}

	p.status = Delivered
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setOptionalRef(target **kernel.UUID, id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	*target = id
	return nil
}
