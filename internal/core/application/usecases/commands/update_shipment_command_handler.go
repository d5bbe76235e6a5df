package commands

import (
	"context"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ErrShipmentNotOwned is returned when a shopper acts on somebody else's shipment.
var ErrShipmentNotOwned = errs.NewAccessDeniedError("shipment belongs to another shopper")

// UpdateShipmentCommandHandler applies a shopper's patch to an open shipment. When the
// product list is replaced the new photos are stored first and the old ones are
// removed after commit.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	storage    ports.PhotoStorage
	clock      Clock
}

func NewUpdateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	storage ports.PhotoStorage,
	clock Clock,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		clock:      clock,
	}
}

func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) (err error) {
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

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if !s.IsOwnedBy(cmd.ShopperID()) {
		return ErrShipmentNotOwned
	}
	if !s.Status().IsOpen() {
		return shipment.ErrShipmentIsNotOpen
	}

	in := cmd.Patch()
	patch := shipment.Patch{
		DesiredDeliveryDate: in.DesiredDeliveryDate,
		RewardPrice:         in.RewardPrice,
	}
	if in.From != nil || in.To != nil {
		route, routeErr := mergeRoute(s.Route(), in.From, in.To)
		if routeErr != nil {
			return routeErr
		}
		patch.Route = &route
	}

	var oldPhotos, newPhotos []string
	if cmd.HasProducts() {
		products, urls, storeErr := storeProducts(ctx, h.storage, in.Products, in.Photos)
		if storeErr != nil {
			return storeErr
		}
		newPhotos = urls
		oldPhotos = productPhotos(s.Products())
		patch.Products = products
	}
	defer func() {
		if err != nil {
			discardPhotos(ctx, h.storage, newPhotos)
		}
	}()

	if err = s.Update(patch, h.clock.now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	discardPhotos(ctx, h.storage, oldPhotos)
	return nil
}

// mergeRoute replaces either end of the current route.
func mergeRoute(current kernel.Route, from, to *string) (kernel.Route, error) {
	fromCode, toCode := current.From().Code(), current.To().Code()
	if from != nil {
		fromCode = *from
	}
	if to != nil {
		toCode = *to
	}
	return kernel.RouteFromCodes(fromCode, toCode)
}
