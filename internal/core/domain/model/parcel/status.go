package parcel

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
//	Booked ──> Assigned ──> Confirmed ──> InTransit ──> Delivered
//	              │             │
//	              └──► Pending ◄┘   (decline resets ownership)
//
// Cancelled is terminal and reachable from any non-delivered state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Booked means the parcel has been registered by a customer.
	Booked

	// Pending means the parcel awaits (re)assignment to a driver.
	Pending

	// Confirmed means the assigned driver accepted the trip carrying the parcel.
	Confirmed

	// Assigned means the parcel is attached to a trip awaiting confirmation.
	Assigned

	// InTransit means the parcel is out for delivery.
	InTransit

	// Delivered means the parcel reached its destination. Terminal.
	Delivered

	// Cancelled means the booking was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Booked:    "booked",
		Pending:   "pending",
		Confirmed: "confirmed",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Booked:    "booked",
		Pending:   "pending",
		Confirmed: "confirmed",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("parcel status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined parcel states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcel status", fmt.Errorf("%d is not a valid status", s))
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

// IsTerminal reports whether the parcel reached a final state.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
