package commands

import (
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/guard"
)

var (
	ErrDeleteShipmentCommandIsNotConstructed = errors.New(
		"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
	)
	ErrModerateShipmentCommandIsNotConstructed = errors.New(
		"ModerateShipmentCommand must be created via NewModerateShipmentCommand constructor",
	)
	ErrAdvanceShipmentProgressCommandIsNotConstructed = errors.New(
		"AdvanceShipmentProgressCommand must be created via NewAdvanceShipmentProgressCommand constructor",
	)
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
)

// DeleteShipmentCommand removes an open shipment of the calling shopper.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(shopperID, shipmentID kernel.UUID) (DeleteShipmentCommand, error) {
	at, err := newActorTarget(shopperID, shipmentID)
	if err != nil {
		return DeleteShipmentCommand{}, err
	}
	return DeleteShipmentCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) ShopperID() kernel.UUID  { return c.actorID }
func (c DeleteShipmentCommand) ShipmentID() kernel.UUID { return c.targetID }

// ModerateShipmentCommand advances a shipment one moderation step. Only staff may
// issue it; the role is checked by the transport layer.
type ModerateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewModerateShipmentCommand(shipmentID kernel.UUID) (ModerateShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ModerateShipmentCommand{}, err
	}
	return ModerateShipmentCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c ModerateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrModerateShipmentCommandIsNotConstructed)
}

func (c ModerateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// AdvanceShipmentProgressCommand is the traveler reporting that the products were
// bought or handed over to them.
type AdvanceShipmentProgressCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewAdvanceShipmentProgressCommand(travelerID, shipmentID kernel.UUID) (AdvanceShipmentProgressCommand, error) {
	at, err := newActorTarget(travelerID, shipmentID)
	if err != nil {
		return AdvanceShipmentProgressCommand{}, err
	}
	return AdvanceShipmentProgressCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceShipmentProgressCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentProgressCommandIsNotConstructed)
}

func (c AdvanceShipmentProgressCommand) TravelerID() kernel.UUID { return c.actorID }
func (c AdvanceShipmentProgressCommand) ShipmentID() kernel.UUID { return c.targetID }

// ConfirmDeliveryCommand is the shopper confirming they received the products.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(shopperID, shipmentID kernel.UUID) (ConfirmDeliveryCommand, error) {
	at, err := newActorTarget(shopperID, shipmentID)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) ShopperID() kernel.UUID  { return c.actorID }
func (c ConfirmDeliveryCommand) ShipmentID() kernel.UUID { return c.targetID }
