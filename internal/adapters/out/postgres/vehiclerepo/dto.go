// Package vehiclerepo provides data transfer objects and mapping functions for
// vehicle persistence.
package vehiclerepo

import (
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
type VehicleDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PlateNumber   string     `gorm:"type:varchar(32);not null"`
	Status        string     `gorm:"type:varchar(32);not null;index"`
	CurrentTripID *uuid.UUID `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle domain aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	var currentTripID, driverID *uuid.UUID
	if id := aggregate.CurrentTripID(); id != nil {
		raw := id.Bytes()
		currentTripID = &raw
	}
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return VehicleDTO{
		ID:            aggregate.ID().Bytes(),
		PlateNumber:   aggregate.PlateNumber(),
		Status:        aggregate.Status().String(),
		CurrentTripID: currentTripID,
		DriverID:      driverID,
	}
}

// toDomain converts a database DTO to a vehicle domain aggregate.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := vehicle.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var currentTripID *kernel.UUID
	if dto.CurrentTripID != nil {
		tripID, tripErr := kernel.UUIDFromBytes((*dto.CurrentTripID)[:])
		if tripErr != nil {
			return nil, tripErr
		}
		currentTripID = &tripID
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	return vehicle.RestoreVehicle(id, dto.PlateNumber, status, currentTripID, driverID)
}
