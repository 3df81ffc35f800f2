package commands_test

import (
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignTripCommandHandler_Handle_SupersedesPendingOffer(t *testing.T) {
	ctx := t.Context()
	state := newOfferedState(t, 1)
	newDriver, err := driver.RestoreDriver(kernel.NewUUID(), "Jonas Beck", true, driver.Available, nil)
	require.NoError(t, err)
	newVehicle, err := vehicle.NewVehicle(kernel.NewUUID(), "PT-871-XA")
	require.NoError(t, err)
	managerID := kernel.NewUUID()

	cmd, err := commands.NewReassignTripCommand(
		state.trip.ID(), newDriver.ID(), newVehicle.ID(), managerID,
	)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	notifications.On("GetPendingDriverOfferForTrip", ctx, state.trip.ID()).
		Return(state.offer, nil).Once()
	notifications.On("Update", ctx, state.offer).Return(nil).Once()
	drivers.On("Get", ctx, state.driver.ID()).Return(state.driver, nil).Once()
	drivers.On("Update", ctx, state.driver).Return(nil).Once()

	trips.On("Get", ctx, state.trip.ID()).Return(state.trip, nil).Once()
	drivers.On("Get", ctx, newDriver.ID()).Return(newDriver, nil).Once()
	vehicles.On("Get", ctx, newVehicle.ID()).Return(newVehicle, nil).Once()
	parcels.On("GetByIDs", ctx, state.trip.ParcelIDs()).Return(state.parcels, nil).Once()
	notifications.On("GetPendingDriverOfferForTrip", ctx, state.trip.ID()).
		Return(nil, errs.NewObjectNotFoundError("notification", state.trip.ID())).Once()
	trips.On("Update", ctx, state.trip).Return(nil).Once()
	drivers.On("Update", ctx, newDriver).Return(nil).Once()
	vehicles.On("Update", ctx, newVehicle).Return(nil).Once()
	parcels.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

	var newOffer *notification.Notification
	notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).
		Run(func(args mock.Arguments) {
			newOffer = args.Get(1).(*notification.Notification)
		}).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

	handler := commands.NewReassignTripCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, notification.Reassigned, state.offer.Status())
	assert.Equal(t, driver.Available, state.driver.Status())
	assert.Equal(t, driver.Pending, newDriver.Status())
	assert.Equal(t, vehicle.Assigned, newVehicle.Status())
	assert.Equal(t, trip.Pending, state.trip.Status())
	assert.True(t, state.trip.DriverID().IsEqual(newDriver.ID()))
	assert.True(t, state.trip.VehicleID().IsEqual(newVehicle.ID()))

	require.NotNil(t, newOffer)
	assert.Equal(t, notification.TripReassignment, newOffer.Kind())
	require.NotNil(t, newOffer.AssignedBy())
	assert.True(t, newOffer.AssignedBy().IsEqual(managerID))

	notifier.AssertExpectations(t)
	notifications.AssertExpectations(t)
	drivers.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReassignTripCommandHandler_Handle_NoPendingOffer(t *testing.T) {
	ctx := t.Context()
	state := newDeclinedState(t, 1)
	newDriver, err := driver.RestoreDriver(kernel.NewUUID(), "Jonas Beck", true, driver.Available, nil)
	require.NoError(t, err)
	newVehicle, err := vehicle.NewVehicle(kernel.NewUUID(), "PT-871-XA")
	require.NoError(t, err)

	cmd, err := commands.NewReassignTripCommand(
		state.trip.ID(), newDriver.ID(), newVehicle.ID(), kernel.NewUUID(),
	)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	notifications.On("GetPendingDriverOfferForTrip", ctx, state.trip.ID()).
		Return(nil, errs.NewObjectNotFoundError("notification", state.trip.ID())).Twice()
	trips.On("Get", ctx, state.trip.ID()).Return(state.trip, nil).Once()
	drivers.On("Get", ctx, newDriver.ID()).Return(newDriver, nil).Once()
	vehicles.On("Get", ctx, newVehicle.ID()).Return(newVehicle, nil).Once()
	parcels.On("GetByIDs", ctx, state.trip.ParcelIDs()).Return(state.parcels, nil).Once()
	trips.On("Update", ctx, state.trip).Return(nil).Once()
	drivers.On("Update", ctx, newDriver).Return(nil).Once()
	vehicles.On("Update", ctx, newVehicle).Return(nil).Once()
	parcels.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()
	notifications.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

	handler := commands.NewReassignTripCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Pending, state.trip.Status())
	notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestReassignTripCommandHandler_Handle_TripAlreadyAccepted(t *testing.T) {
	ctx := t.Context()
	state := newAcceptedState(t, 1)
	newDriver, err := driver.RestoreDriver(kernel.NewUUID(), "Jonas Beck", true, driver.Available, nil)
	require.NoError(t, err)
	newVehicle, err := vehicle.NewVehicle(kernel.NewUUID(), "PT-871-XA")
	require.NoError(t, err)

	cmd, err := commands.NewReassignTripCommand(
		state.trip.ID(), newDriver.ID(), newVehicle.ID(), kernel.NewUUID(),
	)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	notifications.On("GetPendingDriverOfferForTrip", ctx, state.trip.ID()).
		Return(nil, errs.NewObjectNotFoundError("notification", state.trip.ID())).Twice()
	trips.On("Get", ctx, state.trip.ID()).Return(state.trip, nil).Once()
	drivers.On("Get", ctx, newDriver.ID()).Return(newDriver, nil).Once()
	vehicles.On("Get", ctx, newVehicle.ID()).Return(newVehicle, nil).Once()
	parcels.On("GetByIDs", ctx, state.trip.ParcelIDs()).Return(state.parcels, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignTripCommandHandler(factory, new(MockNotifier))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
