package parcel_test

import (
	"testing"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/parcel"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParcel(t *testing.T) {
	t.Run("should create valid parcel in booked status", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := parcel.NewParcel(id)

		require.NoError(t, err)
		assert.NotNil(t, p)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, parcel.Booked, p.Status())
		assert.Nil(t, p.TripID())
		assert.Nil(t, p.AssignedDriver())
		assert.Nil(t, p.AssignedVehicle())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := parcel.NewParcel(invalidID)

		require.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestParcel_Validate(t *testing.T) {
	t.Run("should fail validation for nil parcel", func(t *testing.T) {
		var p *parcel.Parcel

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, parcel.ErrParcelIsNotConstructed, err)
	})
}

func TestParcel_OwnershipLifecycle(t *testing.T) {
	tripID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()

	newBookedParcel := func(t *testing.T) *parcel.Parcel {
		t.Helper()
		p, err := parcel.NewParcel(kernel.NewUUID())
		require.NoError(t, err)
		return p
	}

	t.Run("should attach, confirm, transit and deliver", func(t *testing.T) {
		p := newBookedParcel(t)

		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))
		assert.Equal(t, parcel.Assigned, p.Status())
		require.NotNil(t, p.TripID())
		assert.True(t, p.TripID().IsEqual(tripID))

		require.NoError(t, p.Confirm(tripID, driverID, vehicleID))
		assert.Equal(t, parcel.Confirmed, p.Status())

		require.NoError(t, p.MarkInTransit())
		assert.Equal(t, parcel.InTransit, p.Status())

		require.NoError(t, p.MarkDelivered())
		assert.Equal(t, parcel.Delivered, p.Status())
	})

	t.Run("should not attach a parcel that belongs to another trip", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))

		err := p.AttachToTrip(kernel.NewUUID(), driverID, vehicleID)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "already belongs to trip")
	})

	t.Run("should allow re-attaching to the same trip", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))

		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))
	})

	t.Run("should reset driver link only on decline", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))

		require.NoError(t, p.ResetToPending())

		assert.Equal(t, parcel.Pending, p.Status())
		assert.Nil(t, p.AssignedDriver())
		require.NotNil(t, p.AssignedVehicle())
		assert.True(t, p.AssignedVehicle().IsEqual(vehicleID))
	})

	t.Run("should move ownership on reassignment", func(t *testing.T) {
		p := newBookedParcel(t)
		require.NoError(t, p.AttachToTrip(tripID, driverID, vehicleID))
		newDriverID := kernel.NewUUID()
		newVehicleID := kernel.NewUUID()

		require.NoError(t, p.ReassignTo(newDriverID, newVehicleID))

		assert.Equal(t, parcel.Pending, p.Status())
		assert.True(t, p.AssignedDriver().IsEqual(newDriverID))
		assert.True(t, p.AssignedVehicle().IsEqual(newVehicleID))
	})

	t.Run("should not deliver a parcel that is not in transit", func(t *testing.T) {
		p := newBookedParcel(t)

		err := p.MarkDelivered()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be delivered")
	})

	t.Run("should refuse any move out of a terminal status", func(t *testing.T) {
		p, err := parcel.RestoreParcel(kernel.NewUUID(), parcel.Delivered, nil, nil, nil)
		require.NoError(t, err)

		require.Error(t, p.AttachToTrip(tripID, driverID, vehicleID))
		require.Error(t, p.Confirm(tripID, driverID, vehicleID))
		require.Error(t, p.ResetToPending())
		require.Error(t, p.ReassignTo(driverID, vehicleID))
		require.Error(t, p.MarkInTransit())
	})
}

func TestParcelStatus_FromString(t *testing.T) {
	t.Run("should parse every valid status", func(t *testing.T) {
		for _, name := range []string{
			"booked", "pending", "confirmed", "assigned", "in_transit", "delivered", "cancelled",
		} {
			s, err := parcel.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, s.String())
		}
	})

	t.Run("should fail for unknown status string", func(t *testing.T) {
		_, err := parcel.StatusFromString("lost")

		require.Error(t, err)
	})
}
