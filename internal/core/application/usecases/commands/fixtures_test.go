package commands_test

import (
	"testing"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/model/parcel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
)

// offeredState mirrors the persisted rows right after a trip was created and
// offered to a driver: the trip is pending, the driver holds a pending offer,
// the vehicle is reserved, and every parcel is attached.
type offeredState struct {
	trip    *trip.Trip
	driver  *driver.Driver
	vehicle *vehicle.Vehicle
	parcels []*parcel.Parcel
	offer   *notification.Notification
}

func newOfferedState(t *testing.T, parcelCount int) *offeredState {
	t.Helper()
	now := time.Now().UTC()
	tripID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()

	parcelIDs := make([]kernel.UUID, 0, parcelCount)
	parcels := make([]*parcel.Parcel, 0, parcelCount)
	destinations := make([]*trip.DeliveryDestination, 0, parcelCount)
	for i := range parcelCount {
		parcelID := kernel.NewUUID()
		parcelIDs = append(parcelIDs, parcelID)

		p, err := parcel.RestoreParcel(parcelID, parcel.Assigned, &tripID, &driverID, &vehicleID)
		require.NoError(t, err)
		parcels = append(parcels, p)

		point, err := kernel.NewGeoPoint(48+float64(i), 16+float64(i))
		require.NoError(t, err)
		dest, err := trip.NewDeliveryDestination(parcelID, point, "Depot 7", i+1)
		require.NoError(t, err)
		destinations = append(destinations, dest)
	}

	tr, err := trip.RestoreTrip(
		tripID, driverID, vehicleID, parcelIDs, trip.Pending, destinations,
		now, nil, nil, nil, 1,
	)
	require.NoError(t, err)

	d, err := driver.RestoreDriver(driverID, "Mia Sorensen", false, driver.Pending, nil)
	require.NoError(t, err)

	v, err := vehicle.RestoreVehicle(vehicleID, "KL-445-OP", vehicle.Assigned, nil, nil)
	require.NoError(t, err)

	recipient, err := notification.NewDriverRecipient(driverID)
	require.NoError(t, err)
	offer, err := notification.NewNotification(
		kernel.NewUUID(), recipient, tripID, vehicleID, parcelIDs,
		notification.TripAssignment, "new trip assigned", now,
	)
	require.NoError(t, err)

	return &offeredState{trip: tr, driver: d, vehicle: v, parcels: parcels, offer: offer}
}

// wireUoW binds the repository mocks to a unit of work mock without pinning
// accessor call counts; the repository method expectations carry the Once
// guarantees.
func wireUoW(
	uow *MockUoW,
	drivers *MockDriverRepository,
	vehicles *MockVehicleRepository,
	parcels *MockParcelRepository,
	trips *MockTripRepository,
	notifications *MockNotificationRepository,
) {
	uow.On("DriverRepository").Return(drivers).Maybe()
	uow.On("VehicleRepository").Return(vehicles).Maybe()
	uow.On("ParcelRepository").Return(parcels).Maybe()
	uow.On("TripRepository").Return(trips).Maybe()
	uow.On("NotificationRepository").Return(notifications).Maybe()
}
