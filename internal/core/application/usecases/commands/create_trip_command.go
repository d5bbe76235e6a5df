package commands

import (
	"errors"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CreateTripCommand represents a traveler announcing a planned journey.
//
// Example:
//
//	cmd, err := NewCreateTripCommand(kernel.NewUUID(), travelerID, "US", "EG", departure, 40)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID         kernel.UUID
	travelerID     kernel.UUID
	route          kernel.Route
	departureDate  time.Time
	availableSpace float64

	guard guard.ConstructorGuard
}

// NewCreateTripCommand validates identifiers and the route. Date and capacity rules
// depend on the clock and are checked by the trip aggregate.
func NewCreateTripCommand(
	tripID, travelerID kernel.UUID,
	from, to string,
	departureDate time.Time,
	availableSpace float64,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		guard:          guard.NewConstructorGuard(),
		availableSpace: availableSpace,
	}

	if err := errors.Join(
		tripID.Validate(),
		travelerID.Validate(),
		cmd.setRoute(from, to),
		cmd.setDepartureDate(departureDate),
	); err != nil {
		return CreateTripCommand{}, err
	}
	cmd.tripID = tripID
	cmd.travelerID = travelerID

	return cmd, nil
}

func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

func (c CreateTripCommand) TripID() kernel.UUID      { return c.tripID }
func (c CreateTripCommand) TravelerID() kernel.UUID  { return c.travelerID }
func (c CreateTripCommand) Route() kernel.Route      { return c.route }
func (c CreateTripCommand) DepartureDate() time.Time { return c.departureDate }
func (c CreateTripCommand) AvailableSpace() float64  { return c.availableSpace }

func (c *CreateTripCommand) setRoute(from, to string) error {
	route, err := kernel.RouteFromCodes(from, to)
	if err != nil {
		return err
	}
	c.route = route
	return nil
}

func (c *CreateTripCommand) setDepartureDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("departureDate")
	}
	c.departureDate = date
	return nil
}
