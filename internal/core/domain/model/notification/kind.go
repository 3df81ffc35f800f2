package notification

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Kind classifies the business meaning of a notification.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// TripAssignment is the initial trip offer to a driver.
	TripAssignment

	// DriverDeclined informs a manager that the offered driver declined.
	DriverDeclined

	// ReassignDriver is a fresh offer to a new driver after a decline.
	ReassignDriver

	// TripReassignment is an offer created by a direct manager re-route.
	TripReassignment

	// TripUpdate is an informational progress message.
	TripUpdate

	// TripCancellation informs recipients that a trip was cancelled.
	TripCancellation
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:      "unknown",
		TripAssignment:   "trip_assignment",
		DriverDeclined:   "driver_declined",
		ReassignDriver:   "reassign_driver",
		TripReassignment: "trip_reassignment",
		TripUpdate:       "trip_update",
		TripCancellation: "trip_cancellation",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		TripAssignment:   "trip_assignment",
		DriverDeclined:   "driver_declined",
		ReassignDriver:   "reassign_driver",
		TripReassignment: "trip_reassignment",
		TripUpdate:       "trip_update",
		TripCancellation: "trip_cancellation",
	}
}

// KindFromString parses the persisted string form of a kind.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"notification kind", fmt.Errorf("%q is not a valid kind", s))
}

// Validate checks that the kind is one of the defined notification kinds.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"notification kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the snake_case name used in persistence and the API.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// IsOffer reports whether the kind represents a driver-facing trip offer that
// participates in the at-most-one-pending-offer invariant.
func (k Kind) IsOffer() bool {
	return k == TripAssignment || k == ReassignDriver || k == TripReassignment
}
