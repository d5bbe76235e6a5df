package commands

import (
	"context"

	"crowdship/internal/core/domain/services"
)

// AcceptShipmentCommandHandler books a shipment on a trip.
//
// The trip row is locked before the shipment row, in every transaction that locks
// both, and both rows are written with a version check. Two travelers racing for the
// same shipment, or two shipments racing for the last kilos of a trip, therefore
// cannot both succeed.
type AcceptShipmentCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.ShipmentMatcher
}

func NewAcceptShipmentCommandHandler(uowFactory UoWFactory) AcceptShipmentCommandHandler {
	return AcceptShipmentCommandHandler{
		uowFactory: uowFactory,
		matcher:    services.NewShipmentMatcher(),
	}
}

// Handle loads both aggregates, lets ShipmentMatcher check and apply the booking, and
// persists both in one transaction. Any rejected check leaves storage untouched.
func (h AcceptShipmentCommandHandler) Handle(ctx context.Context, cmd AcceptShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trips := uow.TripRepository()
	shipments := uow.ShipmentRepository()

	t, err := trips.GetForUpdate(ctx, cmd.TripID())
	if err != nil {
		return err
	}
	if !t.IsOwnedBy(cmd.TravelerID()) {
		return services.ErrTripNotOwned
	}

	s, err := shipments.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = h.matcher.Match(cmd.TravelerID(), s, t); err != nil {
		return err
	}

	if err = trips.Update(ctx, t); err != nil {
		return err
	}
	if err = shipments.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
