package driver

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a fleet driver in the system. It is an aggregate root that
// manages driver identity, duty state, and the link to the trip currently
// offered to or executed by the driver.
//
// Business rules:
//   - Driver must have a valid UUID and a non-empty name
//   - driverStatus and currentTripID are mutated exclusively through the
//     assignment workflow; the punch clock owns isAvailable outside of
//     reassignment
//   - Drivers are never deleted, only deactivated (Offline/OffDuty)
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// isAvailable reflects the punch clock (punched in/out)
	isAvailable bool
	// status represents the current state in the assignment lifecycle
	status Status
	// currentTripID is the trip the driver is linked to (nil if none)
	currentTripID *kernel.UUID
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified identity. New drivers
// start Offline and punched out; the punch clock flips them to Available.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	driver := &Driver{
		status: Offline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// preserving its duty state and trip link at the time of persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	isAvailable bool,
	status Status,
	currentTripID *kernel.UUID,
) (*Driver, error) {
	driver := &Driver{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setStatus(status),
		driver.setCurrentTripID(currentTripID),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// Validate checks if the Driver was properly constructed via NewDriver or
// RestoreDriver. The zero value is invalid.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	return d.name
}

// IsAvailable reports whether the driver is punched in.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// Status returns the driver's assignment status.
func (d *Driver) Status() Status {
	return d.status
}

// CurrentTripID returns the trip the driver is linked to, nil if none.
func (d *Driver) CurrentTripID() *kernel.UUID {
	return d.currentTripID
}

// MarkOffered records that a trip offer has been extended to the driver,
// moving the status to Pending. The trip link is only set once the driver
// accepts.
func (d *Driver) MarkOffered() error {
	newStatus, err := d.status.Offer()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MakeUnavailable punches the driver out of the available pool. Used by the
// reassignment workflow, which reserves the new driver immediately.
func (d *Driver) MakeUnavailable() {
	d.isAvailable = false
}

// AcceptTrip records the driver's acceptance of the given trip, linking the
// driver to it. Only valid while an offer is pending.
func (d *Driver) AcceptTrip(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Accept()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentTripID = &tripID
	return nil
}

// StartTrip moves the driver onto the road. Only valid from Accepted.
func (d *Driver) StartTrip() error {
	newStatus, err := d.status.Start()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// ReleaseFromTrip frees the driver after a decline, completion, or
// cancellation: the status reverts to Available and the trip link is cleared.
func (d *Driver) ReleaseFromTrip() error {
	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.currentTripID = nil
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setCurrentTripID(tripID *kernel.UUID) error {
	if tripID != nil {
		if err := tripID.Validate(); err != nil {
			return err
		}
	}
	d.currentTripID = tripID
	return nil
}
