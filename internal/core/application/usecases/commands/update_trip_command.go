package commands

import (
	"errors"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

var ErrUpdateTripCommandIsNotConstructed = errors.New(
	"UpdateTripCommand must be created via NewUpdateTripCommand constructor",
)

// UpdateTripCommand carries a partial update of a trip. Only the departure date and
// the available space may change; nil fields are left untouched.
type UpdateTripCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	departureDate  *time.Time
	availableSpace *float64

	guard guard.ConstructorGuard
}

func NewUpdateTripCommand(
	travelerID, tripID kernel.UUID,
	departureDate *time.Time,
	availableSpace *float64,
) (UpdateTripCommand, error) {
	at, err := newActorTarget(travelerID, tripID)
	if err != nil {
		return UpdateTripCommand{}, err
	}
	if departureDate == nil && availableSpace == nil {
		return UpdateTripCommand{}, errs.NewValueIsRequiredError("departureDate or availableSpace")
	}
	if departureDate != nil && departureDate.IsZero() {
		return UpdateTripCommand{}, errs.NewValueIsRequiredError("departureDate")
	}

	return UpdateTripCommand{
		actorTarget:    at,
		departureDate:  departureDate,
		availableSpace: availableSpace,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTripCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTripCommandIsNotConstructed)
}

func (c UpdateTripCommand) TravelerID() kernel.UUID   { return c.actorID }
func (c UpdateTripCommand) TripID() kernel.UUID       { return c.targetID }
func (c UpdateTripCommand) DepartureDate() *time.Time { return c.departureDate }
func (c UpdateTripCommand) AvailableSpace() *float64  { return c.availableSpace }
