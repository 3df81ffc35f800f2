package queries

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrGetTripQueryIsNotConstructed = errors.New(
	"GetTripQuery must be created via NewGetTripQuery constructor",
)

// GetTripQuery retrieves one trip as a fully hydrated view: the trip itself
// plus the driver, vehicle, parcels, and destinations it references, resolved
// at read time.
type GetTripQuery struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTripQuery creates a query for one trip's hydrated view.
func NewGetTripQuery(tripID kernel.UUID) (GetTripQuery, error) {
	query := GetTripQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setTripID(tripID); err != nil {
		return GetTripQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTripQueryIsNotConstructed if validation fails.
func (q GetTripQuery) Validate() error {
	return q.guard.Validate(ErrGetTripQueryIsNotConstructed)
}

// TripID returns the queried trip.
func (q GetTripQuery) TripID() kernel.UUID {
	return q.tripID
}

func (q *GetTripQuery) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	q.tripID = tripID
	return nil
}

// TripDriverInfo is the driver slice of the hydrated trip view.
type TripDriverInfo struct {
	ID          kernel.UUID
	Name        string
	Status      string
	IsAvailable bool
}

// TripVehicleInfo is the vehicle slice of the hydrated trip view.
type TripVehicleInfo struct {
	ID          kernel.UUID
	PlateNumber string
	Status      string
}

// TripParcelInfo is one parcel of the hydrated trip view.
type TripParcelInfo struct {
	ID     kernel.UUID
	Status string
}

// TripDestinationInfo is one delivery stop of the hydrated trip view.
type TripDestinationInfo struct {
	ParcelID       kernel.UUID
	Latitude       float64
	Longitude      float64
	LocationName   string
	Order          int
	DeliveryStatus string
	DeliveredAt    *time.Time
	Notes          string
}

// GetTripQueryResponse represents the fully hydrated trip.
type GetTripQueryResponse struct {
	ID           kernel.UUID
	Status       string
	AssignedAt   time.Time
	AcceptedAt   *time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	Driver       TripDriverInfo
	Vehicle      TripVehicleInfo
	Parcels      []TripParcelInfo
	Destinations []TripDestinationInfo
}
