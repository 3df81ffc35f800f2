package commands

import (
	"errors"
	"fmt"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// DestinationData carries one delivery stop of a new trip: the parcel it
// serves, its coordinates, a display name, and its 1-based position in the
// route.
type DestinationData struct {
	ParcelID     kernel.UUID
	Latitude     float64
	Longitude    float64
	LocationName string
	Order        int
}

// CreateTripCommand represents a request to create a new trip assigning one
// driver and one vehicle to deliver a set of parcels to ordered destinations.
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID       kernel.UUID
	driverID     kernel.UUID
	vehicleID    kernel.UUID
	parcelIDs    []kernel.UUID
	destinations []DestinationData

	guard guard.ConstructorGuard
}

// NewCreateTripCommand creates a command to register a new trip. Validates
// that all identifiers are valid, at least one parcel is present, and every
// destination references a parcel. Deeper consistency (permutation ordering,
// coordinate ranges) is enforced by the trip aggregate itself.
func NewCreateTripCommand(
	tripID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	parcelIDs []kernel.UUID,
	destinations []DestinationData,
) (CreateTripCommand, error) {
	command := CreateTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTripID(tripID),
		command.setDriverID(driverID),
		command.setVehicleID(vehicleID),
		command.setParcelIDs(parcelIDs),
		command.setDestinations(destinations),
	); err != nil {
		return CreateTripCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateTripCommandIsNotConstructed if validation fails.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// TripID returns the unique identifier for the trip.
func (c CreateTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// DriverID returns the driver the trip is offered to.
func (c CreateTripCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the vehicle reserved for the trip.
func (c CreateTripCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// ParcelIDs returns the parcels the trip carries.
func (c CreateTripCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

// Destinations returns the ordered delivery stops.
func (c CreateTripCommand) Destinations() []DestinationData {
	return c.destinations
}

func (c *CreateTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *CreateTripCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CreateTripCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *CreateTripCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return errs.NewValueIsRequiredError("parcelIDs")
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.parcelIDs = parcelIDs
	return nil
}

func (c *CreateTripCommand) setDestinations(destinations []DestinationData) error {
	for i, dest := range destinations {
		if err := dest.ParcelID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"destinations", fmt.Errorf("destination %d: %w", i, err))
		}
	}

	c.destinations = destinations
	return nil
}
