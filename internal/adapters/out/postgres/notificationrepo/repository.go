package notificationrepo

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new notification to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("notification already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing notification to the database with an optimistic
// concurrency check. Two resolutions racing on the same offer both load
// version N; only the first write matches, the second sees zero rows and
// reports a conflict.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":             dto.Status,
			"read":               dto.Read,
			"message":            dto.Message,
			"delivery_locations": dto.DeliveryLocations,
			"start_location":     dto.StartLocation,
			"declined_driver_id": dto.DeclinedDriverID,
			"assigned_by":        dto.AssignedBy,
			"version":            dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&NotificationDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
		}
		return errs.NewConflictError("notification was modified concurrently")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingDriverOfferForTrip retrieves the pending driver-type offer for
// the given trip, if one exists.
func (r *GormNotificationRepository) GetPendingDriverOfferForTrip(
	ctx context.Context, tripID kernel.UUID,
) (*notification.Notification, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND recipient_type = ? AND status = ?",
			tripID.Bytes(), recipientTypeDriver, notification.Pending.String()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", tripID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingExpiredBefore retrieves pending notifications whose window
// elapsed before the given time.
func (r *GormNotificationRepository) GetAllPendingExpiredBefore(
	ctx context.Context, now time.Time,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", notification.Pending.String(), now).
		Order("expires_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
