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

func TestUpdateTripStatusCommandHandler_Handle_CancelReleasesBoth(t *testing.T) {
	ctx := t.Context()
	state := newInProgressState(t, 2)
	cmd, err := commands.NewUpdateTripStatusCommand(state.trip.ID(), trip.Cancelled)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	trips.On("Get", ctx, state.trip.ID()).Return(state.trip, nil).Once()
	drivers.On("Get", ctx, state.trip.DriverID()).Return(state.driver, nil).Once()
	vehicles.On("Get", ctx, state.trip.VehicleID()).Return(state.vehicle, nil).Once()
	parcels.On("GetByIDs", ctx, state.trip.ParcelIDs()).Return(state.parcels, nil).Once()
	trips.On("Update", ctx, state.trip).Return(nil).Once()
	drivers.On("Update", ctx, state.driver).Return(nil).Once()
	vehicles.On("Update", ctx, state.vehicle).Return(nil).Once()
	parcels.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateTripStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Cancelled, state.trip.Status())
	assert.Equal(t, driver.Available, state.driver.Status())
	assert.Nil(t, state.driver.CurrentTripID())
	assert.Equal(t, vehicle.Active, state.vehicle.Status())
	assert.Nil(t, state.vehicle.DriverID())
	for _, p := range state.parcels {
		assert.Equal(t, parcel.InTransit, p.Status())
	}
	uow.AssertExpectations(t)
	trips.AssertExpectations(t)
}

func TestUpdateTripStatusCommandHandler_Handle_CompleteStampsTimestamp(t *testing.T) {
	ctx := t.Context()
	state := newInProgressState(t, 1)
	cmd, err := commands.NewUpdateTripStatusCommand(state.trip.ID(), trip.Completed)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	trips.On("Get", ctx, state.trip.ID()).Return(state.trip, nil).Once()
	drivers.On("Get", ctx, state.trip.DriverID()).Return(state.driver, nil).Once()
	vehicles.On("Get", ctx, state.trip.VehicleID()).Return(state.vehicle, nil).Once()
	parcels.On("GetByIDs", ctx, state.trip.ParcelIDs()).Return(state.parcels, nil).Once()
	trips.On("Update", ctx, state.trip).Return(nil).Once()
	drivers.On("Update", ctx, state.driver).Return(nil).Once()
	vehicles.On("Update", ctx, state.vehicle).Return(nil).Once()
	parcels.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateTripStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, trip.Completed, state.trip.Status())
	assert.NotNil(t, state.trip.CompletedAt())
	assert.Equal(t, driver.Available, state.driver.Status())
	assert.Equal(t, vehicle.Active, state.vehicle.Status())
}

func TestUpdateTripStatusCommandHandler_Handle_TripNotFound(t *testing.T) {
	ctx := t.Context()
	tripID := kernel.NewUUID()
	cmd, err := commands.NewUpdateTripStatusCommand(tripID, trip.Cancelled)
	require.NoError(t, err)

	drivers := new(MockDriverRepository)
	vehicles := new(MockVehicleRepository)
	parcels := new(MockParcelRepository)
	trips := new(MockTripRepository)
	notifications := new(MockNotificationRepository)
	uow := new(MockUoW)
	wireUoW(uow, drivers, vehicles, parcels, trips, notifications)

	uow.On("Begin", ctx).Return(nil).Once()
	trips.On("Get", ctx, tripID).
		Return(nil, errs.NewObjectNotFoundError("trip", tripID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateTripStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewUpdateTripStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateTripStatusCommand(kernel.NewUUID(), trip.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
