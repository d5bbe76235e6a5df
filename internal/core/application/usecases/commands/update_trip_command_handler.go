package commands

import (
	"context"

	"crowdship/internal/core/domain/model/trip"
)

// UpdateTripCommandHandler applies a traveler's patch to a trip that has not started.
type UpdateTripCommandHandler struct {
	uowFactory TripUoWFactory
	clock      Clock
}

func NewUpdateTripCommandHandler(uowFactory TripUoWFactory, clock Clock) UpdateTripCommandHandler {
	return UpdateTripCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h UpdateTripCommandHandler) Handle(ctx context.Context, cmd UpdateTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	travelerID := cmd.TravelerID()
	patch := trip.Patch{
		DepartureDate:  cmd.DepartureDate(),
		AvailableSpace: cmd.AvailableSpace(),
	}
	now := h.clock.now()

	return changeTrip(ctx, h.uowFactory, &travelerID, cmd.TripID(), func(t *trip.Trip) error {
		return t.Update(patch, now)
	})
}
