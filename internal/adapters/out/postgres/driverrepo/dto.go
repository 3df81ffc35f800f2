// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. It implements the repository pattern for the driver
// domain aggregate, handling the conversion between domain entities and
// database representations.
package driverrepo

import (
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(255);not null"`
	IsAvailable   bool       `gorm:"not null"`
	Status        string     `gorm:"type:varchar(32);not null;index"`
	CurrentTripID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var currentTripID *uuid.UUID
	if id := aggregate.CurrentTripID(); id != nil {
		raw := id.Bytes()
		currentTripID = &raw
	}

	return DriverDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		IsAvailable:   aggregate.IsAvailable(),
		Status:        aggregate.Status().String(),
		CurrentTripID: currentTripID,
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
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

	return driver.RestoreDriver(id, dto.Name, dto.IsAvailable, status, currentTripID)
}
