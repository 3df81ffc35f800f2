package trip

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status represents the lifecycle state of a trip.
//
// State transitions:
//
//	Pending ──> Accepted ──> InProgress ──> Completed
//	   │  ▲
//	   │  └── Declined (a reassignment re-enters the offer cycle)
//	   └──────────► Cancelled (administrative, from any non-terminal state)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the trip awaits driver acceptance.
	Pending

	// Accepted means the offered driver accepted the trip.
	Accepted

	// InProgress means the journey has started.
	InProgress

	// Completed means every destination reached a final delivery state. Terminal.
	Completed

	// Cancelled means the trip was administratively cancelled. Terminal.
	Cancelled

	// Declined means the offered driver declined; the trip awaits reassignment.
	Declined
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Declined:   "declined",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Declined:   "declined",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("trip status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined trip states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("trip status", fmt.Errorf("%d is not a valid status", s))
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

// IsTerminal reports whether the trip reached a final state.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Accept transitions the status to Accepted. Only a pending trip can be accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s cannot be accepted", s),
		)
	}
	return Accepted, nil
}

// Decline transitions the status to Declined. Only a pending trip can be declined.
func (s Status) Decline() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s cannot be declined", s),
		)
	}
	return Declined, nil
}

// Start transitions the status to InProgress.
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidStateError("Trip must be accepted to start")
	}
	return InProgress, nil
}

// Complete transitions the status to Completed once every destination is final.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s cannot be completed", s),
		)
	}
	return Completed, nil
}

// Reassign resets the status to Pending, re-entering the offer cycle.
// Valid while the trip is pending (direct re-route) or declined.
func (s Status) Reassign() (Status, error) {
	if s != Pending && s != Declined {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s cannot be reassigned", s),
		)
	}
	return Pending, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("trip in status %s cannot be cancelled", s),
		)
	}
	return Cancelled, nil
}
