package vehicle

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status represents the operational state of a vehicle.
//
// Assignment-related transitions:
//
//	Active ──> Assigned ──> TripConfirmed ──> OnTrip ──> Active
//	              ▲               │
//	              └───────◄───────┘
//	          (decline keeps the vehicle reserved to the trip)
//
// Maintenance, InService, and Sold are administrative states managed outside
// the assignment workflow; Sold is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active means the vehicle is operational and unassigned.
	Active

	// Assigned means the vehicle is reserved to a trip awaiting driver confirmation.
	Assigned

	// TripConfirmed means the assigned driver accepted the trip.
	TripConfirmed

	// OnTrip means the vehicle is out on a trip.
	OnTrip

	// Maintenance means the vehicle is undergoing maintenance.
	Maintenance

	// InService means the vehicle is at a service appointment.
	InService

	// Sold means the vehicle left the fleet. Terminal.
	Sold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "unknown",
		Active:        "active",
		Assigned:      "assigned",
		TripConfirmed: "trip_confirmed",
		OnTrip:        "on_trip",
		Maintenance:   "maintenance",
		InService:     "in_service",
		Sold:          "sold",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:        "active",
		Assigned:      "assigned",
		TripConfirmed: "trip_confirmed",
		OnTrip:        "on_trip",
		Maintenance:   "maintenance",
		InService:     "in_service",
		Sold:          "sold",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined vehicle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in persistence and the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// canJoinTrip reports whether the vehicle can participate in the assignment
// workflow at all. Vehicles out of the fleet or already on the road cannot.
func (s Status) canJoinTrip() bool {
	switch s {
	case Sold, OnTrip, Maintenance, InService:
		return false
	default:
		return true
	}
}

// Reserve transitions the status to Assigned when the vehicle is attached to
// a trip.
func (s Status) Reserve() (Status, error) {
	if !s.canJoinTrip() {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("vehicle in status %s cannot be reserved for a trip", s),
		)
	}
	return Assigned, nil
}

// Confirm transitions the status to TripConfirmed when the driver accepts.
func (s Status) Confirm() (Status, error) {
	if !s.canJoinTrip() {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("vehicle in status %s cannot confirm a trip", s),
		)
	}
	return TripConfirmed, nil
}

// Start transitions the status to OnTrip when the journey begins.
func (s Status) Start() (Status, error) {
	if s != TripConfirmed {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("vehicle in status %s cannot start a trip", s),
		)
	}
	return OnTrip, nil
}

// Release transitions the status back to Active after completion or
// cancellation.
func (s Status) Release() (Status, error) {
	if s == Sold {
		return 0, errs.NewInvalidStateError("a sold vehicle cannot be released")
	}
	return Active, nil
}
