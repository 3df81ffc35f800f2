package driver

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status represents the lifecycle state of a driver with respect to trip
// assignment.
//
// State transitions:
//
//	Offline/Available ──> Pending ──> Accepted ──> OnTrip ──┐
//	       ▲                 │                              │
//	       └────────────◄────┴──────────────◄───────────────┘
//	                 (decline / completion releases the driver)
//
// OffDuty is controlled by the punch-clock subsystem and only constrains new
// offers.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Offline means the driver is registered but not punched in.
	Offline

	// Available means the driver is punched in and can receive trip offers.
	Available

	// Pending means a trip offer has been extended and awaits resolution.
	Pending

	// Accepted means the driver accepted a trip that has not started yet.
	Accepted

	// OnTrip means the driver is currently executing a trip.
	OnTrip

	// OffDuty means the driver is punched out for the day.
	OffDuty
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Offline:   "offline",
		Available: "available",
		Pending:   "pending",
		Accepted:  "accepted",
		OnTrip:    "on_trip",
		OffDuty:   "off_duty",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offline:   "offline",
		Available: "available",
		Pending:   "pending",
		Accepted:  "accepted",
		OnTrip:    "on_trip",
		OffDuty:   "off_duty",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined driver states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%d is not a valid status", s))
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

// Offer transitions the status to Pending when a trip offer is extended.
// A driver already executing a trip cannot receive a new offer.
func (s Status) Offer() (Status, error) {
	if s == OnTrip {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("driver in status %s cannot receive a trip offer", s),
		)
	}
	return Pending, nil
}

// Accept transitions the status to Accepted. Only a driver with a pending
// offer can accept.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("driver in status %s cannot accept a trip", s),
		)
	}
	return Accepted, nil
}

// Start transitions the status to OnTrip when the journey begins.
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("driver in status %s cannot start a trip", s),
		)
	}
	return OnTrip, nil
}

// Release transitions the status back to Available after a decline,
// completion, or cancellation. Release is valid from any state so that
// administrative corrections can always free a driver.
func (s Status) Release() (Status, error) {
	return Available, nil
}
