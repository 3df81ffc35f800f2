package queries_test

import (
	"context"
	"testing"
	"time"

	"fleet/internal/adapters/out/postgres/notificationrepo"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveNotificationsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *notificationrepo.GormNotificationRepository
	handler   queries.GetActiveNotificationsQueryHandler
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&notificationrepo.NotificationDTO{})
	suite.Require().NoError(err)

	suite.repo = notificationrepo.NewGormNotificationRepository(db, &mockAggregateTracker{})
	suite.handler = queries.NewGetActiveNotificationsQueryHandler(db)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE notifications").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TestHandle_DriverNotifications_NewestFirst() {
	driverID := kernel.NewUUID()
	now := time.Now().UTC()

	older := suite.seedDriverOffer(driverID, now.Add(-2*time.Hour))
	newer := suite.seedDriverOffer(driverID, now.Add(-1*time.Hour))
	suite.seedDriverOffer(kernel.NewUUID(), now.Add(-30*time.Minute))

	query, err := queries.NewGetActiveNotificationsQuery(driverID, queries.RecipientDriver)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)

	first := result[0]
	suite.Equal(newer.TripID(), first.TripID)
	suite.Equal(newer.VehicleID(), first.VehicleID)
	suite.Equal(newer.ParcelIDs(), first.ParcelIDs)
	suite.Equal("trip_assignment", first.Kind)
	suite.Equal("pending", first.Status)
	suite.False(first.Read)
	suite.Equal("New trip offer", first.Message)
	suite.WithinDuration(newer.CreatedAt(), first.CreatedAt, time.Second)
	suite.WithinDuration(newer.ExpiresAt(), first.ExpiresAt, time.Second)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TestHandle_ExpiredRowsExcluded() {
	driverID := kernel.NewUUID()
	now := time.Now().UTC()

	// Still pending in storage, but past its TTL.
	suite.seedDriverOffer(driverID, now.Add(-notification.TTL-time.Hour))
	active := suite.seedDriverOffer(driverID, now.Add(-time.Hour))

	query, err := queries.NewGetActiveNotificationsQuery(driverID, queries.RecipientDriver)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].ID)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TestHandle_ManagerNotifications() {
	managerID := kernel.NewUUID()
	declinedDriverID := kernel.NewUUID()
	now := time.Now().UTC()

	recipient, err := notification.NewManagerRecipient(managerID)
	suite.Require().NoError(err)
	notice, err := notification.NewNotification(
		kernel.NewUUID(),
		recipient,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		notification.DriverDeclined,
		"Driver declined the trip",
		now.Add(-time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(notice.SetDeclinedDriver(declinedDriverID))
	suite.Require().NoError(suite.repo.Add(context.Background(), notice))

	suite.seedDriverOffer(declinedDriverID, now.Add(-time.Hour))

	query, err := queries.NewGetActiveNotificationsQuery(managerID, queries.RecipientManager)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(notice.ID(), result[0].ID)
	suite.Equal("driver_declined", result[0].Kind)
	suite.Equal("Driver declined the trip", result[0].Message)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TestHandle_UnknownRecipient_ReturnsEmptySlice() {
	query, err := queries.NewGetActiveNotificationsQuery(kernel.NewUUID(), queries.RecipientDriver)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveNotificationsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveNotificationsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveNotificationsQuery constructor")
}

func TestNewGetActiveNotificationsQuery_RejectsUnknownRecipientType(t *testing.T) {
	_, err := queries.NewGetActiveNotificationsQuery(kernel.NewUUID(), queries.RecipientType("dispatcher"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

// seedDriverOffer persists a pending trip offer created at the given time.
func (suite *GetActiveNotificationsQueryHandlerTestSuite) seedDriverOffer(
	driverID kernel.UUID,
	createdAt time.Time,
) *notification.Notification {
	recipient, err := notification.NewDriverRecipient(driverID)
	suite.Require().NoError(err)

	offer, err := notification.NewNotification(
		kernel.NewUUID(),
		recipient,
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		notification.TripAssignment,
		"New trip offer",
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), offer))

	return offer
}

func TestGetActiveNotificationsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveNotificationsQueryHandlerTestSuite))
}
