// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence.
package parcelrepo

import (
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
type ParcelDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	TripID          *uuid.UUID `gorm:"type:uuid;index"`
	AssignedDriver  *uuid.UUID `gorm:"type:uuid;index"`
	AssignedVehicle *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	toRaw := func(id *kernel.UUID) *uuid.UUID {
		if id == nil {
			return nil
		}
		raw := id.Bytes()
		return &raw
	}

	return ParcelDTO{
		ID:              aggregate.ID().Bytes(),
		Status:          aggregate.Status().String(),
		TripID:          toRaw(aggregate.TripID()),
		AssignedDriver:  toRaw(aggregate.AssignedDriver()),
		AssignedVehicle: toRaw(aggregate.AssignedVehicle()),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	fromRaw := func(raw *uuid.UUID) (*kernel.UUID, error) {
		if raw == nil {
			return nil, nil
		}
		id, idErr := kernel.UUIDFromBytes((*raw)[:])
		if idErr != nil {
			return nil, idErr
		}
		return &id, nil
	}

	tripID, err := fromRaw(dto.TripID)
	if err != nil {
		return nil, err
	}
	assignedDriver, err := fromRaw(dto.AssignedDriver)
	if err != nil {
		return nil, err
	}
	assignedVehicle, err := fromRaw(dto.AssignedVehicle)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(id, status, tripID, assignedDriver, assignedVehicle)
}
