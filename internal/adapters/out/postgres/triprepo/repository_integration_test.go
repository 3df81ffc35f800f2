package triprepo_test

import (
	"context"
	"testing"
	"time"

	"fleet/internal/adapters/out/postgres/triprepo"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// TripRepositoryIntegrationTestSuite provides integration tests for
// GormTripRepository using PostgreSQL containers, covering the two-table
// aggregate persistence and the optimistic concurrency check.
type TripRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *triprepo.GormTripRepository
	tracker    *MockAggregateTracker
}

func (suite *TripRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&triprepo.TripDTO{}, &triprepo.DestinationDTO{}))
}

func (suite *TripRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trips, trip_destinations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = triprepo.NewGormTripRepository(suite.db, suite.tracker)
}

func (suite *TripRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_ValidTrip_Success() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(2)

	suite.tracker.On("TrackAggregate", testTrip.ID(), testTrip).Once()

	err := suite.repository.Add(ctx, testTrip)
	suite.Require().NoError(err)

	suite.assertTripCount(1)
	suite.assertDestinationCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflictError() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(1)

	suite.tracker.On("TrackAggregate", testTrip.ID(), testTrip).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	err := suite.repository.Add(ctx, testTrip)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestGet_ExistingTrip_ReturnsOrderedDestinations() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(3)

	suite.tracker.On("TrackAggregate", testTrip.ID(), testTrip).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	retrieved, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)

	suite.Equal(testTrip.ID(), retrieved.ID())
	suite.Equal(testTrip.DriverID(), retrieved.DriverID())
	suite.Equal(testTrip.VehicleID(), retrieved.VehicleID())
	suite.Equal(trip.Pending, retrieved.Status())
	suite.Equal(1, retrieved.Version())
	suite.Len(retrieved.ParcelIDs(), 3)

	suite.Require().Len(retrieved.Destinations(), 3)
	for i, dest := range retrieved.Destinations() {
		suite.Equal(i+1, dest.Order())
		suite.Equal(testTrip.Destinations()[i].ParcelID(), dest.ParcelID())
		suite.Equal(testTrip.Destinations()[i].LocationName(), dest.LocationName())
		suite.Equal(trip.DeliveryPending, dest.DeliveryStatus())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestGet_NonExistentTrip_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_AcceptedTrip_PersistsTransition() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(2)

	suite.tracker.On("TrackAggregate", testTrip.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	loaded, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Accept(time.Now().UTC()))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.Accepted, retrieved.Status())
	suite.NotNil(retrieved.AcceptedAt())
	suite.Equal(2, retrieved.Version())
	suite.Len(retrieved.Destinations(), 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflictError() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(1)

	suite.tracker.On("TrackAggregate", testTrip.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	firstLoad, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	secondLoad, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(firstLoad.Accept(time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, firstLoad))

	suite.Require().NoError(secondLoad.Decline())
	err = suite.repository.Update(ctx, secondLoad)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	retrieved, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.Accepted, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_NonExistentTrip_ReturnsNotFoundError() {
	ctx := context.Background()
	testTrip := suite.createTestTrip(1)

	err := suite.repository.Update(ctx, testTrip)

	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestTrip builds a pending trip with the given number of parcels and
// one destination per parcel in route order.
func (suite *TripRepositoryIntegrationTestSuite) createTestTrip(parcelCount int) *trip.Trip {
	parcelIDs := make([]kernel.UUID, 0, parcelCount)
	destinations := make([]*trip.DeliveryDestination, 0, parcelCount)
	for i := range parcelCount {
		parcelID := kernel.NewUUID()
		parcelIDs = append(parcelIDs, parcelID)

		point, err := kernel.NewGeoPoint(47+float64(i), 19+float64(i))
		suite.Require().NoError(err)
		dest, err := trip.NewDeliveryDestination(parcelID, point, "Depot 7", i+1)
		suite.Require().NoError(err)
		destinations = append(destinations, dest)
	}

	testTrip, err := trip.NewTrip(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		parcelIDs, destinations, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testTrip
}

func (suite *TripRepositoryIntegrationTestSuite) assertTripCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&triprepo.TripDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *TripRepositoryIntegrationTestSuite) assertDestinationCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&triprepo.DestinationDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestTripRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TripRepositoryIntegrationTestSuite))
}
