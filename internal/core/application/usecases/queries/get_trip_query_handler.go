package queries

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetTripQueryHandler reads one trip joined with its driver and vehicle, then
// loads the parcel and destination projections. Hydration happens at read
// time; the write side stores plain references only.
type GetTripQueryHandler struct {
	db *gorm.DB
}

// NewGetTripQueryHandler creates a handler for hydrated trip queries.
func NewGetTripQueryHandler(db *gorm.DB) GetTripQueryHandler {
	return GetTripQueryHandler{db: db}
}

// Handle executes the query.
// Returns ObjectNotFoundError if the trip does not exist.
func (h GetTripQueryHandler) Handle(ctx context.Context, query GetTripQuery) (GetTripQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTripQueryResponse{}, err
	}

	resp, parcelIDs, err := h.loadTrip(ctx, query.TripID())
	if err != nil {
		return GetTripQueryResponse{}, err
	}

	if resp.Parcels, err = h.loadParcels(ctx, parcelIDs); err != nil {
		return GetTripQueryResponse{}, err
	}
	if resp.Destinations, err = h.loadDestinations(ctx, query.TripID()); err != nil {
		return GetTripQueryResponse{}, err
	}

	return resp, nil
}

func (h GetTripQueryHandler) loadTrip(
	ctx context.Context,
	tripID kernel.UUID,
) (GetTripQueryResponse, pq.StringArray, error) {
	var resp GetTripQueryResponse
	var id, driverID, vehicleID uuid.UUID
	var parcelIDs pq.StringArray

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.status,
			t.assigned_at,
			t.accepted_at,
			t.started_at,
			t.completed_at,
			t.parcel_ids,
			d.id,
			d.name,
			d.status,
			d.is_available,
			v.id,
			v.plate_number,
			v.status
		FROM trips t
		JOIN drivers d ON d.id = t.driver_id
		JOIN vehicles v ON v.id = t.vehicle_id
		WHERE t.id = ?
	`, tripID.Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Status,
		&resp.AssignedAt,
		&resp.AcceptedAt,
		&resp.StartedAt,
		&resp.CompletedAt,
		&parcelIDs,
		&driverID,
		&resp.Driver.Name,
		&resp.Driver.Status,
		&resp.Driver.IsAvailable,
		&vehicleID,
		&resp.Vehicle.PlateNumber,
		&resp.Vehicle.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTripQueryResponse{}, nil, errs.NewObjectNotFoundError("trip", tripID.String())
	}
	if err != nil {
		return GetTripQueryResponse{}, nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetTripQueryResponse{}, nil, err
	}
	if resp.Driver.ID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return GetTripQueryResponse{}, nil, err
	}
	if resp.Vehicle.ID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
		return GetTripQueryResponse{}, nil, err
	}

	return resp, parcelIDs, nil
}

func (h GetTripQueryHandler) loadParcels(ctx context.Context, parcelIDs pq.StringArray) ([]TripParcelInfo, error) {
	parcels := make([]TripParcelInfo, 0, len(parcelIDs))
	if len(parcelIDs) == 0 {
		return parcels, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, status
		FROM parcels
		WHERE id = ANY(?::uuid[])
		ORDER BY id
	`, parcelIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var info TripParcelInfo
		var id uuid.UUID

		if err = rows.Scan(&id, &info.Status); err != nil {
			return nil, err
		}
		if info.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		parcels = append(parcels, info)
	}

	return parcels, rows.Err()
}

func (h GetTripQueryHandler) loadDestinations(ctx context.Context, tripID kernel.UUID) ([]TripDestinationInfo, error) {
	destinations := make([]TripDestinationInfo, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			parcel_id,
			latitude,
			longitude,
			location_name,
			sort_order,
			delivery_status,
			delivered_at,
			notes
		FROM trip_destinations
		WHERE trip_id = ?
		ORDER BY sort_order
	`, tripID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var info TripDestinationInfo
		var parcelID uuid.UUID

		err = rows.Scan(
			&parcelID,
			&info.Latitude,
			&info.Longitude,
			&info.LocationName,
			&info.Order,
			&info.DeliveryStatus,
			&info.DeliveredAt,
			&info.Notes,
		)
		if err != nil {
			return nil, err
		}
		if info.ParcelID, err = kernel.UUIDFromBytes(parcelID[:]); err != nil {
			return nil, err
		}
		destinations = append(destinations, info)
	}

	return destinations, rows.Err()
}
