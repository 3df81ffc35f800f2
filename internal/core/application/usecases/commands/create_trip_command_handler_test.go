package commands_test

import (
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/parcel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeCreateTripCommand(
	t *testing.T,
	driverID, vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
) commands.CreateTripCommand {
	t.Helper()
	destinations := make([]commands.DestinationData, 0, len(parcelIDs))
	for i, parcelID := range parcelIDs {
		destinations = append(destinations, commands.DestinationData{
			ParcelID:     parcelID,
			Latitude:     52 + float64(i),
			Longitude:    13 + float64(i),
			LocationName: "Hub 3",
			Order:        i + 1,
		})
	}

	cmd, err := commands.NewCreateTripCommand(
		kernel.NewUUID(), driverID, vehicleID, parcelIDs, destinations,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateTripCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	tripDriver, err := driver.NewDriver(kernel.NewUUID(), "Elena Varga")
	require.NoError(t, err)
	tripVehicle, err := vehicle.NewVehicle(kernel.NewUUID(), "WN-202-TC")
	require.NoError(t, err)

	firstParcel, err := parcel.NewParcel(kernel.NewUUID())
	require.NoError(t, err)
	secondParcel, err := parcel.NewParcel(kernel.NewUUID())
	require.NoError(t, err)
	parcelIDs := []kernel.UUID{firstParcel.ID(), secondParcel.ID()}

	cmd := makeCreateTripCommand(t, tripDriver.ID(), tripVehicle.ID(), parcelIDs)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	drivers.On("Get", ctx, tripDriver.ID()).Return(tripDriver, nil).Once()
	vehicles.On("Get", ctx, tripVehicle.ID()).Return(tripVehicle, nil).Once()
	parcels.On("GetByIDs", ctx, parcelIDs).
		Return([]*parcel.Parcel{firstParcel, secondParcel}, nil).Once()

	var created *trip.Trip
	trips.On("Add", ctx, mock.AnythingOfType("*trip.Trip")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*trip.Trip)
		}).
		Return(nil).Once()
	vehicles.On("Update", ctx, tripVehicle).Return(nil).Once()
	parcels.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateTripCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, trip.Pending, created.Status())
	assert.True(t, created.DriverID().IsEqual(tripDriver.ID()))
	assert.True(t, created.VehicleID().IsEqual(tripVehicle.ID()))
	assert.Len(t, created.Destinations(), 2)

	assert.Equal(t, vehicle.Assigned, tripVehicle.Status())
	assert.Equal(t, parcel.Assigned, firstParcel.Status())
	require.NotNil(t, firstParcel.TripID())
	assert.True(t, firstParcel.TripID().IsEqual(created.ID()))
	uow.AssertExpectations(t)
	trips.AssertExpectations(t)
}

func TestCreateTripCommandHandler_Handle_VehicleNotReservable(t *testing.T) {
	ctx := t.Context()
	tripDriver, err := driver.NewDriver(kernel.NewUUID(), "Elena Varga")
	require.NoError(t, err)
	soldVehicle, err := vehicle.RestoreVehicle(kernel.NewUUID(), "WN-202-TC", vehicle.Sold, nil, nil)
	require.NoError(t, err)
	bookedParcel, err := parcel.NewParcel(kernel.NewUUID())
	require.NoError(t, err)
	parcelIDs := []kernel.UUID{bookedParcel.ID()}

	cmd := makeCreateTripCommand(t, tripDriver.ID(), soldVehicle.ID(), parcelIDs)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	drivers.On("Get", ctx, tripDriver.ID()).Return(tripDriver, nil).Once()
	vehicles.On("Get", ctx, soldVehicle.ID()).Return(soldVehicle, nil).Once()
	parcels.On("GetByIDs", ctx, parcelIDs).Return([]*parcel.Parcel{bookedParcel}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateTripCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	trips.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateTripCommandHandler_Handle_UnknownDriver(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	bookedParcel, err := parcel.NewParcel(kernel.NewUUID())
	require.NoError(t, err)

	cmd := makeCreateTripCommand(t, driverID, kernel.NewUUID(), []kernel.UUID{bookedParcel.ID()})

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	drivers.On("Get", ctx, driverID).
		Return(nil, errs.NewObjectNotFoundError("driver", driverID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateTripCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	vehicles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestNewCreateTripCommand_Validation(t *testing.T) {
	t.Run("should fail without parcels", func(t *testing.T) {
		_, err := commands.NewCreateTripCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with invalid destination parcel id", func(t *testing.T) {
		_, err := commands.NewCreateTripCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]kernel.UUID{kernel.NewUUID()},
			[]commands.DestinationData{{ParcelID: kernel.UUID{}, Order: 1}},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		err := commands.CreateTripCommand{}.Validate()
		require.ErrorIs(t, err, commands.ErrCreateTripCommandIsNotConstructed)
	})
}
