package notification

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status represents the resolution state of a notification.
//
//	Pending ──> Accepted | Declined | Expired | Reassigned
//
// All transitions out of Pending are terminal; a notification is never
// mutated afterwards except for the read flag.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending means the notification awaits resolution.
	Pending

	// Accepted means the driver accepted the offer.
	Accepted

	// Declined means the driver declined the offer.
	Declined

	// Expired means the 24h window elapsed unresolved.
	Expired

	// Reassigned means a manager acted on the decline and re-offered the trip.
	Reassigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		Accepted:      "accepted",
		Declined:      "declined",
		Expired:       "expired",
		Reassigned:    "reassigned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Accepted:   "accepted",
		Declined:   "declined",
		Expired:    "expired",
		Reassigned: "reassigned",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"notification status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined notification states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"notification status", fmt.Errorf("%d is not a valid status", s))
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

// resolve guards the single legal transition source: Pending.
func (s Status) resolve(target Status) (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError(
			fmt.Sprintf("notification in status %s cannot be resolved", s),
		)
	}
	return target, nil
}
