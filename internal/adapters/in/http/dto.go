package http

import (
	"time"
)

// ErrorResponse is the uniform error body of the REST surface.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DestinationRequest is one delivery stop in a trip creation request.
type DestinationRequest struct {
	ParcelID     string  `json:"parcelId"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"locationName"`
	Order        int     `json:"order"`
}

// CreateTripRequest is the body of POST /api/v1/trips.
type CreateTripRequest struct {
	TripID       string               `json:"tripId"`
	DriverID     string               `json:"driverId"`
	VehicleID    string               `json:"vehicleId"`
	ParcelIDs    []string             `json:"parcelIds"`
	Destinations []DestinationRequest `json:"destinations"`
}

// GeoPointRequest is a coordinate pair in a notification creation request.
type GeoPointRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateNotificationRequest is the body of POST /api/v1/notifications.
// Exactly one of DriverID and ManagerID must match RecipientType.
type CreateNotificationRequest struct {
	RecipientType     string            `json:"recipientType"`
	DriverID          string            `json:"driverId,omitempty"`
	ManagerID         string            `json:"managerId,omitempty"`
	TripID            string            `json:"tripId"`
	VehicleID         string            `json:"vehicleId"`
	ParcelIDs         []string          `json:"parcelIds"`
	Type              string            `json:"type,omitempty"`
	Message           string            `json:"message,omitempty"`
	DeliveryLocations []GeoPointRequest `json:"deliveryLocations,omitempty"`
	StartLocation     *GeoPointRequest  `json:"startLocation,omitempty"`
	AssignedBy        string            `json:"assignedBy,omitempty"`
}

// UpdateNotificationStatusRequest is the body of PATCH /api/v1/notifications/:id/status.
type UpdateNotificationStatusRequest struct {
	Status string `json:"status"`
}

// ReassignDriverRequest is the body of POST /api/v1/notifications/:id/reassign-driver.
type ReassignDriverRequest struct {
	NewDriverID string `json:"newDriverId"`
	VehicleID   string `json:"vehicleId"`
}

// ReassignTripRequest is the body of PATCH /api/v1/trips/:tripId/reassign.
type ReassignTripRequest struct {
	NewDriverID  string `json:"newDriverId"`
	NewVehicleID string `json:"newVehicleId"`
	ManagerID    string `json:"managerId"`
}

// UpdateDeliveryRequest is the body of PATCH /api/v1/trips/:tripId/delivery/:parcelId.
type UpdateDeliveryRequest struct {
	DeliveryStatus string `json:"deliveryStatus"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateTripStatusRequest is the body of PATCH /api/v1/trips/:id/status.
type UpdateTripStatusRequest struct {
	Status string `json:"status"`
}

// NotificationResponse is one notification in a GET listing.
type NotificationResponse struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	VehicleID string    `json:"vehicleId"`
	ParcelIDs []string  `json:"parcelIds"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Read      bool      `json:"read"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TripDriverResponse is the driver slice of the trip view.
type TripDriverResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	IsAvailable bool   `json:"isAvailable"`
}

// TripVehicleResponse is the vehicle slice of the trip view.
type TripVehicleResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Status      string `json:"status"`
}

// TripParcelResponse is one parcel of the trip view.
type TripParcelResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TripDestinationResponse is one delivery stop of the trip view.
type TripDestinationResponse struct {
	ParcelID       string     `json:"parcelId"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	LocationName   string     `json:"locationName"`
	Order          int        `json:"order"`
	DeliveryStatus string     `json:"deliveryStatus"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// TripResponse is the hydrated trip view returned by GET /api/v1/trips/:id.
type TripResponse struct {
	ID           string                    `json:"id"`
	Status       string                    `json:"status"`
	AssignedAt   time.Time                 `json:"assignedAt"`
	AcceptedAt   *time.Time                `json:"acceptedAt,omitempty"`
	StartedAt    *time.Time                `json:"startedAt,omitempty"`
	CompletedAt  *time.Time                `json:"completedAt,omitempty"`
	Driver       TripDriverResponse        `json:"driver"`
	Vehicle      TripVehicleResponse       `json:"vehicle"`
	Parcels      []TripParcelResponse      `json:"parcels"`
	Destinations []TripDestinationResponse `json:"destinations"`
}
