package commands

import (
	"context"
	"fmt"

	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ErrTooManyOpenShipments is returned when the shopper already has
// shipment.MaxOpenPerShopper shipments waiting for a traveler.
var ErrTooManyOpenShipments = errs.NewRuleViolationError(
	fmt.Sprintf("a shopper may have at most %d open shipments", shipment.MaxOpenPerShopper),
)

// CreateShipmentCommandHandler stores the product photos and persists a new PENDING
// shipment.
//
// The shopper's user row is locked for the duration of the transaction, so two
// concurrent requests of the same shopper cannot both pass the open-shipment quota.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	storage    ports.PhotoStorage
	clock      Clock
}

func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	storage ports.PhotoStorage,
	clock Clock,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		clock:      clock,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.UserRepository().GetForUpdate(ctx, cmd.ShopperID()); err != nil {
		return err
	}

	shipments := uow.ShipmentRepository()
	open, err := shipments.CountOpenByShopper(ctx, cmd.ShopperID())
	if err != nil {
		return err
	}
	if open >= shipment.MaxOpenPerShopper {
		return ErrTooManyOpenShipments
	}

	products, urls, err := storeProducts(ctx, h.storage, cmd.Products(), cmd.Photos())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			discardPhotos(ctx, h.storage, urls)
		}
	}()

	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.ShopperID(),
		products,
		cmd.Route(),
		cmd.DesiredDeliveryDate(),
		cmd.RewardPrice(),
		h.clock.now(),
	)
	if err != nil {
		return err
	}

	if err = shipments.Add(ctx, s); err != nil {
		return err
	}

	err = uow.Commit(ctx)
	return err
}
