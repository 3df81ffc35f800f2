package services

import (
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/parcel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"
)

// AssignmentCoordinator is the domain service at the heart of the assignment
// workflow. Given a notification transition it applies the ordered fan-out of
// state changes to the Trip, Driver, Vehicle, and Parcel aggregates so that
// the cross-entity invariants hold after every completed transition.
//
// The coordinator mutates loaded aggregates in memory only; persisting them
// atomically is the calling command handler's job (one unit-of-work
// transaction per transition).
type AssignmentCoordinator struct{}

// NewAssignmentCoordinator creates a new AssignmentCoordinator instance.
func NewAssignmentCoordinator() AssignmentCoordinator {
	return AssignmentCoordinator{}
}

// Accept applies the acceptance fan-out: the trip moves to Accepted, the
// vehicle confirms and links to trip and driver, the driver links to the
// trip, and every parcel becomes Confirmed with full ownership references.
func (AssignmentCoordinator) Accept(
	t *trip.Trip,
	d *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
	now time.Time,
) error {
	if err := validateParticipants(t, d, v, parcels); err != nil {
		return err
	}

	if err := t.Accept(now); err != nil {
		return err
	}
	if err := v.ConfirmTrip(t.ID(), d.ID()); err != nil {
		return err
	}
	if err := d.AcceptTrip(t.ID()); err != nil {
		return err
	}
	for _, p := range parcels {
		if err := p.Confirm(t.ID(), d.ID(), v.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Decline applies the decline fan-out: the trip moves to Declined, the
// vehicle drops its driver link but stays reserved to the trip, the driver is
// released, and every parcel loses its driver reference while keeping the
// vehicle reference.
func (AssignmentCoordinator) Decline(
	t *trip.Trip,
	d *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
) error {
	if err := validateParticipants(t, d, v, parcels); err != nil {
		return err
	}

	if err := t.Decline(); err != nil {
		return err
	}
	if err := v.ReleaseDriver(); err != nil {
		return err
	}
	if err := d.ReleaseFromTrip(); err != nil {
		return err
	}
	for _, p := range parcels {
		if err := p.ResetToPending(); err != nil {
			return err
		}
	}
	return nil
}

// Reassign re-enters the offer cycle with a new driver and vehicle: the trip
// resets to Pending with the new links, the new driver is put on a pending
// offer and pulled from the available pool, and every parcel's ownership
// moves to the new pair.
func (AssignmentCoordinator) Reassign(
	t *trip.Trip,
	newDriver *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
) error {
	if err := validateParticipants(t, newDriver, v, parcels); err != nil {
		return err
	}

	if err := t.Reassign(newDriver.ID(), v.ID()); err != nil {
		return err
	}
	if err := newDriver.MarkOffered(); err != nil {
		return err
	}
	newDriver.MakeUnavailable()
	for _, p := range parcels {
		if err := p.ReassignTo(newDriver.ID(), v.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Start applies the journey-start fan-out: the trip moves to InProgress with
// every destination in transit, the driver and vehicle go on trip, and every
// parcel is marked in transit.
func (AssignmentCoordinator) Start(
	t *trip.Trip,
	d *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
	now time.Time,
) error {
	if err := validateParticipants(t, d, v, parcels); err != nil {
		return err
	}

	if err := t.Start(now); err != nil {
		return err
	}
	if err := d.StartTrip(); err != nil {
		return err
	}
	if err := v.StartTrip(); err != nil {
		return err
	}
	for _, p := range parcels {
		if err := p.MarkInTransit(); err != nil {
			return err
		}
	}
	return nil
}

// Complete releases the driver and vehicle after the trip's completion
// rollup: both revert to an available state with their trip links cleared.
func (AssignmentCoordinator) Complete(d *driver.Driver, v *vehicle.Vehicle) error {
	if err := errors.Join(d.Validate(), v.Validate()); err != nil {
		return err
	}

	if err := d.ReleaseFromTrip(); err != nil {
		return err
	}
	return v.ReleaseFromTrip()
}

// Override applies the administrative status correction path. The trip is
// forced into newStatus with the matching timestamp stamped, and the driver
// and vehicle follow the fixed side-effect table: in_progress pushes both on
// trip, completed and cancelled release both, accepted applies the acceptance
// links. Other statuses touch only the trip.
func (c AssignmentCoordinator) Override(
	t *trip.Trip,
	d *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
	newStatus trip.Status,
	now time.Time,
) error {
	if err := validateParticipants(t, d, v, parcels); err != nil {
		return err
	}

	switch newStatus {
	case trip.Accepted:
		return c.Accept(t, d, v, parcels, now)
	case trip.InProgress:
		if err := t.Override(newStatus, now); err != nil {
			return err
		}
		if err := d.StartTrip(); err != nil {
			return err
		}
		return v.StartTrip()
	case trip.Completed, trip.Cancelled:
		if err := t.Override(newStatus, now); err != nil {
			return err
		}
		return c.Complete(d, v)
	default:
		return t.Override(newStatus, now)
	}
}

// validateParticipants ensures every aggregate handed to the coordinator was
// properly constructed and actually belongs to the trip's parcel set.
func validateParticipants(
	t *trip.Trip,
	d *driver.Driver,
	v *vehicle.Vehicle,
	parcels []*parcel.Parcel,
) error {
	if err := errors.Join(t.Validate(), d.Validate(), v.Validate()); err != nil {
		return err
	}
	if len(parcels) != len(t.ParcelIDs()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"parcels",
			fmt.Errorf("%d parcels loaded for a trip carrying %d", len(parcels), len(t.ParcelIDs())),
		)
	}
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
