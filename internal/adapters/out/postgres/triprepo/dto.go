// Package triprepo provides data transfer objects and mapping functions for
// trip persistence. The trip aggregate spans two tables: the trips row and
// one trip_destinations row per delivery stop.
package triprepo

import (
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TripDTO represents the database structure for persisting trip aggregates.
// The version column backs the optimistic concurrency check in Update.
type TripDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	DriverID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	VehicleID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	ParcelIDs    pq.StringArray   `gorm:"type:text[];not null"`
	Status       string           `gorm:"type:varchar(32);not null;index"`
	AssignedAt   time.Time        `gorm:"not null"`
	AcceptedAt   *time.Time       ``
	StartedAt    *time.Time       ``
	CompletedAt  *time.Time       ``
	Version      int              `gorm:"not null"`
	Destinations []DestinationDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for trip entities.
func (TripDTO) TableName() string {
	return "trips"
}

// DestinationDTO represents the database structure for persisting delivery
// destinations. Links to its trip via foreign key; SortOrder preserves the
// route order.
type DestinationDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TripID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParcelID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Latitude       float64    `gorm:"not null"`
	Longitude      float64    `gorm:"not null"`
	LocationName   string     `gorm:"type:varchar(255);not null"`
	SortOrder      int        `gorm:"not null"`
	DeliveryStatus string     `gorm:"type:varchar(32);not null"`
	DeliveredAt    *time.Time ``
	Notes          string     `gorm:"type:text"`
}

// TableName specifies the database table name for delivery destinations.
func (DestinationDTO) TableName() string {
	return "trip_destinations"
}

// fromDomain converts a trip domain aggregate to its database representation.
// Destination rows get fresh surrogate keys on every write; identity lives in
// (trip_id, parcel_id).
func fromDomain(aggregate *trip.Trip) TripDTO {
	tripID := aggregate.ID().Bytes()

	parcelIDs := make(pq.StringArray, 0, len(aggregate.ParcelIDs()))
	for _, id := range aggregate.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	destinations := make([]DestinationDTO, 0, len(aggregate.Destinations()))
	for _, dest := range aggregate.Destinations() {
		destinations = append(destinations, DestinationDTO{
			ID:             uuid.New(),
			TripID:         tripID,
			ParcelID:       dest.ParcelID().Bytes(),
			Latitude:       dest.Coordinates().Latitude(),
			Longitude:      dest.Coordinates().Longitude(),
			LocationName:   dest.LocationName(),
			SortOrder:      dest.Order(),
			DeliveryStatus: dest.DeliveryStatus().String(),
			DeliveredAt:    dest.DeliveredAt(),
			Notes:          dest.Notes(),
		})
	}

	return TripDTO{
		ID:           tripID,
		DriverID:     aggregate.DriverID().Bytes(),
		VehicleID:    aggregate.VehicleID().Bytes(),
		ParcelIDs:    parcelIDs,
		Status:       aggregate.Status().String(),
		AssignedAt:   aggregate.AssignedAt(),
		AcceptedAt:   aggregate.AcceptedAt(),
		StartedAt:    aggregate.StartedAt(),
		CompletedAt:  aggregate.CompletedAt(),
		Version:      aggregate.Version(),
		Destinations: destinations,
	}
}

// toDomain converts a database DTO to a trip domain aggregate, reconstructing
// its destinations in route order.
func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.ParcelIDs))
	for _, s := range dto.ParcelIDs {
		parcelID, parcelErr := kernel.UUIDFromString(s)
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	status, err := trip.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	destinations := make([]*trip.DeliveryDestination, 0, len(dto.Destinations))
	for _, destDTO := range dto.Destinations {
		dest, destErr := destinationToDomain(destDTO)
		if destErr != nil {
			return nil, destErr
		}
		destinations = append(destinations, dest)
	}

	return trip.RestoreTrip(
		id,
		driverID,
		vehicleID,
		parcelIDs,
		status,
		destinations,
		dto.AssignedAt,
		dto.AcceptedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.Version,
	)
}

func destinationToDomain(dto DestinationDTO) (*trip.DeliveryDestination, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	coordinates, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	deliveryStatus, err := trip.DeliveryStatusFromString(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	return trip.RestoreDeliveryDestination(
		parcelID,
		coordinates,
		dto.LocationName,
		dto.SortOrder,
		deliveryStatus,
		dto.DeliveredAt,
		dto.Notes,
	)
}
