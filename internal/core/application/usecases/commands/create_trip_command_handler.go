package commands

import (
	"context"

	"crowdship/internal/core/domain/model/trip"
)

// CreateTripCommandHandler persists a new trip in UNDER_REVIEW status.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
	clock      Clock
}

func NewCreateTripCommandHandler(uowFactory TripUoWFactory, clock Clock) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the trip. The departure date must be strictly after now.
func (h CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := trip.NewTrip(
		cmd.TripID(),
		cmd.TravelerID(),
		cmd.Route(),
		cmd.DepartureDate(),
		cmd.AvailableSpace(),
		h.clock.now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TripRepository().Add(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
