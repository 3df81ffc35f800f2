package trip

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// DeliveryStatus represents the state of a single delivery destination,
// independent of the trip's overall status.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryPending means the stop has not been attempted yet.
	DeliveryPending

	// DeliveryInTransit means the parcel for this stop is on the road.
	DeliveryInTransit

	// Delivered means the parcel was handed off at this stop. Final.
	Delivered

	// DeliveryFailed means the hand-off attempt failed. Final.
	DeliveryFailed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "unknown",
		DeliveryPending:   "pending",
		DeliveryInTransit: "in_transit",
		Delivered:         "delivered",
		DeliveryFailed:    "failed",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		DeliveryPending:   "pending",
		DeliveryInTransit: "in_transit",
		Delivered:         "delivered",
		DeliveryFailed:    "failed",
	}
}

// DeliveryStatusFromString parses the persisted string form of a delivery status.
func DeliveryStatusFromString(s string) (DeliveryStatus, error) {
	for status, str := range getValidDeliveryStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status", fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks that the delivery status is one of the defined states.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the snake_case name used in persistence and the API.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the destination needs no further attempts.
func (s DeliveryStatus) IsFinal() bool {
	return s == Delivered || s == DeliveryFailed
}
