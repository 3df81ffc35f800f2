package trip

import (
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	// ErrParcelsAreRequired is returned when attempting to create a trip without parcels.
	ErrParcelsAreRequired = errs.NewValueIsRequiredError("parcelIDs")
	// ErrTripIsNotConstructed is returned when using an improperly initialized Trip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")
)

// Trip represents a single assignment of one driver and one vehicle to
// deliver a set of parcels to ordered destinations. It is the aggregate root
// of the trip lifecycle and owns its delivery destinations.
//
// Invariants:
//   - parcelIDs is non-empty
//   - deliveryDestinations is a permutation-ordered projection of parcelIDs:
//     exactly one destination per parcel
//   - once in progress, the trip status is derivable from the aggregate of
//     the destinations' delivery statuses (the completion rollup)
type Trip struct {
	// id uniquely identifies the trip and serves as its business key
	id kernel.UUID
	// driverID is the driver the trip is offered to or executed by
	driverID kernel.UUID
	// vehicleID is the vehicle reserved for the trip
	vehicleID kernel.UUID
	// parcelIDs is the set of parcels carried by the trip
	parcelIDs []kernel.UUID
	// status is the current state in the trip lifecycle
	status Status
	// destinations is the ordered route, one stop per parcel
	destinations []*DeliveryDestination
	// lifecycle timestamps
	assignedAt  time.Time
	acceptedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time
	// version supports optimistic concurrency at the persistence boundary
	version int
	// guard ensures the trip was properly constructed
	guard guard.ConstructorGuard
}

// NewTrip creates a trip in Pending status, validating that at least one
// parcel is present and that destinations form a permutation of the parcel
// set. assignedAt is stamped with now.
func NewTrip(
	id kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	destinations []*DeliveryDestination,
	now time.Time,
) (*Trip, error) {
	trip := &Trip{
		status:     Pending,
		assignedAt: now,
		version:    1,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trip.setID(id),
		trip.setDriverID(driverID),
		trip.setVehicleID(vehicleID),
		trip.setParcelIDs(parcelIDs),
		trip.setDestinations(destinations),
	); err != nil {
		return nil, err
	}

	return trip, nil
}

// RestoreTrip reconstructs a Trip aggregate from persistent storage.
func RestoreTrip(
	id kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	status Status,
	destinations []*DeliveryDestination,
	assignedAt time.Time,
	acceptedAt, startedAt, completedAt *time.Time,
	version int,
) (*Trip, error) {
	trip := &Trip{
		assignedAt:  assignedAt,
		acceptedAt:  acceptedAt,
		startedAt:   startedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trip.setID(id),
		trip.setDriverID(driverID),
		trip.setVehicleID(vehicleID),
		trip.setParcelIDs(parcelIDs),
		trip.setStatus(status),
		trip.setDestinations(destinations),
		trip.setVersion(version),
	); err != nil {
		return nil, err
	}

	return trip, nil
}

// Validate checks if the Trip was properly constructed. The zero value is invalid.
func (t *Trip) Validate() error {
	if t == nil {
		return ErrTripIsNotConstructed
	}
	return t.guard.Validate(ErrTripIsNotConstructed)
}

// IsEqual compares two trips by their unique identifiers.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// DriverID returns the driver currently attached to the trip.
func (t *Trip) DriverID() kernel.UUID {
	return t.driverID
}

// VehicleID returns the vehicle reserved for the trip.
func (t *Trip) VehicleID() kernel.UUID {
	return t.vehicleID
}

// ParcelIDs returns the parcels carried by the trip.
func (t *Trip) ParcelIDs() []kernel.UUID {
	return t.parcelIDs
}

// Status returns the trip's lifecycle status.
func (t *Trip) Status() Status {
	return t.status
}

// Destinations returns the ordered route.
func (t *Trip) Destinations() []*DeliveryDestination {
	return t.destinations
}

// AssignedAt returns when the trip was created and offered.
func (t *Trip) AssignedAt() time.Time {
	return t.assignedAt
}

// AcceptedAt returns when the driver accepted, nil if not yet.
func (t *Trip) AcceptedAt() *time.Time {
	return t.acceptedAt
}

// StartedAt returns when the journey started, nil if not yet.
func (t *Trip) StartedAt() *time.Time {
	return t.startedAt
}

// CompletedAt returns when the trip completed, nil if not yet.
func (t *Trip) CompletedAt() *time.Time {
	return t.completedAt
}

// Version returns the optimistic-concurrency version loaded from storage.
func (t *Trip) Version() int {
	return t.version
}

// Accept records the driver's acceptance, stamping acceptedAt.
func (t *Trip) Accept(now time.Time) error {
	newStatus, err := t.status.Accept()
	if err != nil {
		return err
	}

	t.status = newStatus
	acceptedAt := now
	t.acceptedAt = &acceptedAt
	return nil
}

// Decline records the driver's refusal of the offer.
func (t *Trip) Decline() error {
	newStatus, err := t.status.Decline()
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

// Start begins the journey: the trip moves to InProgress, startedAt is
// stamped, and every destination goes in transit.
func (t *Trip) Start(now time.Time) error {
	newStatus, err := t.status.Start()
	if err != nil {
		return err
	}

	t.status = newStatus
	startedAt := now
	t.startedAt = &startedAt
	for _, dest := range t.destinations {
		dest.markInTransit()
	}
	return nil
}

// UpdateDelivery advances the destination matching parcelID to newStatus with
// optional notes. When the change leaves every destination in a final state
// the trip auto-completes and completedAt is stamped; the returned bool
// reports whether that rollup happened so callers can release the driver and
// vehicle.
func (t *Trip) UpdateDelivery(
	parcelID kernel.UUID,
	newStatus DeliveryStatus,
	notes string,
	now time.Time,
) (bool, error) {
	if t.status != InProgress {
		return false, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s has no deliveries to update", t.status),
		)
	}

	dest := t.findDestination(parcelID)
	if dest == nil {
		return false, errs.NewObjectNotFoundError("deliveryDestination", parcelID.String())
	}

	if err := dest.updateStatus(newStatus, notes, now); err != nil {
		return false, err
	}

	if !t.allDestinationsFinal() {
		return false, nil
	}

	if err := t.complete(now); err != nil {
		return false, err
	}
	return true, nil
}

// Reassign re-routes the trip to a new driver and vehicle, resetting the
// status to Pending and clearing the acceptance stamp. Valid while the trip
// is pending or declined.
func (t *Trip) Reassign(newDriverID, newVehicleID kernel.UUID) error {
	if err := errors.Join(newDriverID.Validate(), newVehicleID.Validate()); err != nil {
		return err
	}

	newStatus, err := t.status.Reassign()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.driverID = newDriverID
	t.vehicleID = newVehicleID
	t.acceptedAt = nil
	return nil
}

// Cancel administratively terminates a non-terminal trip.
func (t *Trip) Cancel() error {
	newStatus, err := t.status.Cancel()
	if err != nil {
		return err
	}

	t.status = newStatus
	return nil
}

// Override forces the trip into the given status, stamping the matching
// lifecycle timestamp. This is the administrative correction path; the
// regular transitions remain the happy path.
func (t *Trip) Override(newStatus Status, now time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	t.status = newStatus
	ts := now
	switch newStatus {
	case Accepted:
		t.acceptedAt = &ts
	case InProgress:
		t.startedAt = &ts
	case Completed:
		t.completedAt = &ts
	default:
	}
	return nil
}

// IsEveryDestinationFinal reports whether no destinations remain open.
func (t *Trip) IsEveryDestinationFinal() bool {
	return t.allDestinationsFinal()
}

func (t *Trip) complete(now time.Time) error {
	newStatus, err := t.status.Complete()
	if err != nil {
		return err
	}

	t.status = newStatus
	completedAt := now
	t.completedAt = &completedAt
	return nil
}

func (t *Trip) allDestinationsFinal() bool {
	for _, dest := range t.destinations {
		if !dest.DeliveryStatus().IsFinal() {
			return false
		}
	}
	return true
}

func (t *Trip) findDestination(parcelID kernel.UUID) *DeliveryDestination {
	for _, dest := range t.destinations {
		if dest.ParcelID().IsEqual(parcelID) {
			return dest
		}
	}
	return nil
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	t.driverID = driverID
	return nil
}

func (t *Trip) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	t.vehicleID = vehicleID
	return nil
}

func (t *Trip) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrParcelsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(parcelIDs))
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"parcelIDs", fmt.Errorf("parcel %s listed twice", id))
		}
		seen[id] = struct{}{}
	}
	t.parcelIDs = parcelIDs
	return nil
}

func (t *Trip) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

// setDestinations enforces that the route is a permutation of the parcel set:
// one destination per parcel, no extras.
func (t *Trip) setDestinations(destinations []*DeliveryDestination) error {
	if len(destinations) != len(t.parcelIDs) {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryDestinations",
			fmt.Errorf("%d destinations for %d parcels", len(destinations), len(t.parcelIDs)),
		)
	}

	parcels := make(map[kernel.UUID]struct{}, len(t.parcelIDs))
	for _, id := range t.parcelIDs {
		parcels[id] = struct{}{}
	}

	for _, dest := range destinations {
		if err := dest.Validate(); err != nil {
			return err
		}
		if _, ok := parcels[dest.ParcelID()]; !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"deliveryDestinations",
				fmt.Errorf("destination references parcel %s outside the trip", dest.ParcelID()),
			)
		}
		delete(parcels, dest.ParcelID())
	}
	t.destinations = destinations
	return nil
}

func (t *Trip) setVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("trip version", fmt.Errorf("%d is not positive", version))
	}
	t.version = version
	return nil
}
