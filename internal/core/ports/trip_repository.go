package ports

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates.
type TripRepository interface {
	// Add persists a new trip aggregate to storage.
	// Returns ConflictError if a trip with the same identifier already exists.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip aggregate using an
	// optimistic version check. Returns ConflictError if the stored version
	// no longer matches the one the aggregate was loaded with.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip aggregate, including its delivery destinations,
	// by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)
}
