package commands

import (
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/guard"
)

var ErrAcceptShipmentCommandIsNotConstructed = errors.New(
	"AcceptShipmentCommand must be created via NewAcceptShipmentCommand constructor",
)

// AcceptShipmentCommand represents a traveler putting a shipment on one of their trips.
//
// Example:
//
//	cmd, err := NewAcceptShipmentCommand(travelerID, shipmentID, tripID)
//	if err != nil {
//	    return err
//	}
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, errs.ErrAccessDenied):
//	    // the trip belongs to another traveler
//	case errors.Is(err, errs.ErrRuleViolation):
//	    // already accepted, too heavy or delivery before departure
//	}
type AcceptShipmentCommand struct { //nolint:recvcheck //using for validation
	travelerID kernel.UUID
	shipmentID kernel.UUID
	tripID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptShipmentCommand(travelerID, shipmentID, tripID kernel.UUID) (AcceptShipmentCommand, error) {
	if err := errors.Join(travelerID.Validate(), shipmentID.Validate(), tripID.Validate()); err != nil {
		return AcceptShipmentCommand{}, err
	}

	return AcceptShipmentCommand{
		travelerID: travelerID,
		shipmentID: shipmentID,
		tripID:     tripID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptShipmentCommandIsNotConstructed)
}

func (c AcceptShipmentCommand) TravelerID() kernel.UUID { return c.travelerID }
func (c AcceptShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AcceptShipmentCommand) TripID() kernel.UUID     { return c.tripID }
