package queries

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetActiveNotificationsQueryHandler reads a recipient's active notifications
// from the database. The TTL filter lives in the query itself, so expiry
// correctness does not depend on the sweep job having run.
type GetActiveNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveNotificationsQueryHandler creates a handler for active notification queries.
func NewGetActiveNotificationsQueryHandler(db *gorm.DB) GetActiveNotificationsQueryHandler {
	return GetActiveNotificationsQueryHandler{db: db}
}

// Handle executes the query. Returns the recipient's non-expired
// notifications, newest first; an unknown recipient simply yields an empty
// list.
func (h GetActiveNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveNotificationsQuery,
) ([]GetActiveNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetActiveNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			trip_id,
			vehicle_id,
			parcel_ids,
			kind,
			status,
			read,
			message,
			created_at,
			expires_at
		FROM notifications
		WHERE recipient_type = ?
		  AND recipient_id = ?
		  AND expires_at > ?
		ORDER BY created_at DESC
	`, string(query.RecipientType()), query.RecipientID().Bytes(), time.Now().UTC()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveNotificationsQueryResponse
		var id, tripID, vehicleID uuid.UUID
		var parcelIDs pq.StringArray

		err = rows.Scan(
			&id,
			&tripID,
			&vehicleID,
			&parcelIDs,
			&resp.Kind,
			&resp.Status,
			&resp.Read,
			&resp.Message,
			&resp.CreatedAt,
			&resp.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.TripID, err = kernel.UUIDFromBytes(tripID[:]); err != nil {
			return nil, err
		}
		if resp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
			return nil, err
		}
		if resp.ParcelIDs, err = parcelIDsFromStrings(parcelIDs); err != nil {
			return nil, err
		}

		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func parcelIDsFromStrings(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
