// Package notificationrepo provides data transfer objects and mapping
// functions for notification persistence.
package notificationrepo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	recipientTypeDriver  = "driver"
	recipientTypeManager = "manager"
)

// NotificationDTO represents the database structure for persisting
// notification aggregates. The recipient union flattens into a discriminator
// column plus the recipient's identifier; route stops are stored as
// "lat,lon" strings in a text array.
type NotificationDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RecipientType     string         `gorm:"type:varchar(16);not null;index:idx_notifications_recipient"`
	RecipientID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	TripID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	VehicleID         uuid.UUID      `gorm:"type:uuid;not null"`
	ParcelIDs         pq.StringArray `gorm:"type:text[]"`
	Kind              string         `gorm:"type:varchar(32);not null"`
	Status            string         `gorm:"type:varchar(32);not null;index"`
	Read              bool           `gorm:"not null"`
	Message           string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null"`
	ExpiresAt         time.Time      `gorm:"not null;index"`
	DeliveryLocations pq.StringArray `gorm:"type:text[]"`
	StartLocation     *string        `gorm:"type:varchar(64)"`
	DeclinedDriverID  *uuid.UUID     `gorm:"type:uuid"`
	AssignedBy        *uuid.UUID     `gorm:"type:uuid"`
	Version           int            `gorm:"not null"`
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification domain aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var recipientType string
	switch aggregate.Recipient().(type) {
	case notification.DriverRecipient:
		recipientType = recipientTypeDriver
	case notification.ManagerRecipient:
		recipientType = recipientTypeManager
	}

	parcelIDs := make(pq.StringArray, 0, len(aggregate.ParcelIDs()))
	for _, id := range aggregate.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	var deliveryLocations pq.StringArray
	for _, loc := range aggregate.DeliveryLocations() {
		deliveryLocations = append(deliveryLocations, encodeGeoPoint(loc))
	}

	var startLocation *string
	if loc := aggregate.StartLocation(); loc != nil {
		encoded := encodeGeoPoint(*loc)
		startLocation = &encoded
	}

	var declinedDriverID *uuid.UUID
	if id := aggregate.DeclinedDriverID(); id != nil {
		raw := id.Bytes()
		declinedDriverID = &raw
	}

	var assignedBy *uuid.UUID
	if id := aggregate.AssignedBy(); id != nil {
		raw := id.Bytes()
		assignedBy = &raw
	}

	return NotificationDTO{
		ID:                aggregate.ID().Bytes(),
		RecipientType:     recipientType,
		RecipientID:       aggregate.Recipient().RecipientID().Bytes(),
		TripID:            aggregate.TripID().Bytes(),
		VehicleID:         aggregate.VehicleID().Bytes(),
		ParcelIDs:         parcelIDs,
		Kind:              aggregate.Kind().String(),
		Status:            aggregate.Status().String(),
		Read:              aggregate.IsRead(),
		Message:           aggregate.Message(),
		CreatedAt:         aggregate.CreatedAt(),
		ExpiresAt:         aggregate.ExpiresAt(),
		DeliveryLocations: deliveryLocations,
		StartLocation:     startLocation,
		DeclinedDriverID:  declinedDriverID,
		AssignedBy:        assignedBy,
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to a notification domain aggregate.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipient, err := recipientFromDTO(dto)
	if err != nil {
		return nil, err
	}

	tripID, err := kernel.UUIDFromBytes(dto.TripID[:])
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

	kind, err := notification.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := notification.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var deliveryLocations []kernel.GeoPoint
	for _, encoded := range dto.DeliveryLocations {
		loc, locErr := decodeGeoPoint(encoded)
		if locErr != nil {
			return nil, locErr
		}
		deliveryLocations = append(deliveryLocations, loc)
	}

	var startLocation *kernel.GeoPoint
	if dto.StartLocation != nil {
		loc, locErr := decodeGeoPoint(*dto.StartLocation)
		if locErr != nil {
			return nil, locErr
		}
		startLocation = &loc
	}

	var declinedDriverID *kernel.UUID
	if dto.DeclinedDriverID != nil {
		driverID, idErr := kernel.UUIDFromBytes(dto.DeclinedDriverID[:])
		if idErr != nil {
			return nil, idErr
		}
		declinedDriverID = &driverID
	}

	var assignedBy *kernel.UUID
	if dto.AssignedBy != nil {
		managerID, idErr := kernel.UUIDFromBytes(dto.AssignedBy[:])
		if idErr != nil {
			return nil, idErr
		}
		assignedBy = &managerID
	}

	return notification.RestoreNotification(
		id,
		recipient,
		tripID,
		vehicleID,
		parcelIDs,
		kind,
		status,
		dto.Read,
		dto.Message,
		dto.CreatedAt,
		dto.ExpiresAt,
		deliveryLocations,
		startLocation,
		declinedDriverID,
		assignedBy,
		dto.Version,
	)
}

func recipientFromDTO(dto NotificationDTO) (notification.Recipient, error) {
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	switch dto.RecipientType {
	case recipientTypeDriver:
		recipient, recipientErr := notification.NewDriverRecipient(recipientID)
		if recipientErr != nil {
			return nil, recipientErr
		}
		return recipient, nil
	case recipientTypeManager:
		recipient, recipientErr := notification.NewManagerRecipient(recipientID)
		if recipientErr != nil {
			return nil, recipientErr
		}
		return recipient, nil
	default:
		return nil, errs.NewValueIsInvalidError("recipientType")
	}
}

func encodeGeoPoint(p kernel.GeoPoint) string {
	return fmt.Sprintf("%g,%g", p.Latitude(), p.Longitude())
}

func decodeGeoPoint(s string) (kernel.GeoPoint, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidError("geoPoint")
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("geoPoint", err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("geoPoint", err)
	}

	return kernel.NewGeoPoint(latitude, longitude)
}
