package vehicle

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	// ErrPlateNumberIsRequired is returned when attempting to create a vehicle without a plate number.
	ErrPlateNumberIsRequired = errs.NewValueIsRequiredError("plateNumber")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle represents a fleet vehicle. It is an aggregate root tracking the
// vehicle's operational status and its current links to a trip and a driver.
//
// The driverID is a weak back-reference: it records the relation while a trip
// is confirmed or running, never ownership. On a decline only the driver link
// is severed; the vehicle stays reserved to the trip (status Assigned).
type Vehicle struct {
	// id uniquely identifies the vehicle
	id kernel.UUID
	// plateNumber is the registration plate, used for display only
	plateNumber string
	// status is the operational state of the vehicle
	status Status
	// currentTripID is the trip the vehicle is attached to (nil if none)
	currentTripID *kernel.UUID
	// driverID is the weak back-reference to the linked driver (nil if none)
	driverID *kernel.UUID
	// guard ensures the vehicle was properly constructed
	guard guard.ConstructorGuard
}

// NewVehicle creates a new Vehicle in Active status.
func NewVehicle(id kernel.UUID, plateNumber string) (*Vehicle, error) {
	vehicle := &Vehicle{
		status: Active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setPlateNumber(plateNumber),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// RestoreVehicle reconstructs a Vehicle aggregate from persistent storage.
func RestoreVehicle(
	id kernel.UUID,
	plateNumber string,
	status Status,
	currentTripID *kernel.UUID,
	driverID *kernel.UUID,
) (*Vehicle, error) {
	vehicle := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setPlateNumber(plateNumber),
		vehicle.setStatus(status),
		vehicle.setCurrentTripID(currentTripID),
		vehicle.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Validate checks if the Vehicle was properly constructed. The zero value is invalid.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by their unique identifiers.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// PlateNumber returns the registration plate.
func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

// Status returns the operational status.
func (v *Vehicle) Status() Status {
	return v.status
}

// CurrentTripID returns the trip the vehicle is attached to, nil if none.
func (v *Vehicle) CurrentTripID() *kernel.UUID {
	return v.currentTripID
}

// DriverID returns the linked driver, nil if none.
func (v *Vehicle) DriverID() *kernel.UUID {
	return v.driverID
}

// Reserve attaches the vehicle to a trip awaiting driver confirmation.
func (v *Vehicle) Reserve() error {
	newStatus, err := v.status.Reserve()
	if err != nil {
		return err
	}

	v.status = newStatus
	return nil
}

// ConfirmTrip records the driver's acceptance: the vehicle links to both the
// trip and the driver and moves to TripConfirmed.
func (v *Vehicle) ConfirmTrip(tripID, driverID kernel.UUID) error {
	if err := errors.Join(tripID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	newStatus, err := v.status.Confirm()
	if err != nil {
		return err
	}

	v.status = newStatus
	v.currentTripID = &tripID
	v.driverID = &driverID
	return nil
}

// ReleaseDriver severs the driver link after a decline. The vehicle stays
// logically reserved to the trip, so the status reverts to Assigned while both
// the trip and driver links are cleared.
func (v *Vehicle) ReleaseDriver() error {
	newStatus, err := v.status.Reserve()
	if err != nil {
		return err
	}

	v.status = newStatus
	v.currentTripID = nil
	v.driverID = nil
	return nil
}

// StartTrip moves the vehicle onto the road. Only valid from TripConfirmed.
func (v *Vehicle) StartTrip() error {
	newStatus, err := v.status.Start()
	if err != nil {
		return err
	}

	v.status = newStatus
	return nil
}

// ReleaseFromTrip frees the vehicle after completion or cancellation:
// status reverts to Active and both links are cleared.
func (v *Vehicle) ReleaseFromTrip() error {
	newStatus, err := v.status.Release()
	if err != nil {
		return err
	}

	v.status = newStatus
	v.currentTripID = nil
	v.driverID = nil
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return ErrPlateNumberIsRequired
	}
	v.plateNumber = plateNumber
	return nil
}

func (v *Vehicle) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}

func (v *Vehicle) setCurrentTripID(tripID *kernel.UUID) error {
	if tripID != nil {
		if err := tripID.Validate(); err != nil {
			return err
		}
	}
	v.currentTripID = tripID
	return nil
}

func (v *Vehicle) setDriverID(driverID *kernel.UUID) error {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
	}
	v.driverID = driverID
	return nil
}
