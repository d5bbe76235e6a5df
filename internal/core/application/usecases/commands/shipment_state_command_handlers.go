package commands

import (
	"context"

	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ErrNotShipmentTraveler is returned when a traveler reports progress on a shipment
// they did not accept.
var ErrNotShipmentTraveler = errs.NewAccessDeniedError("shipment is carried by another traveler")

// DeleteShipmentCommandHandler removes an open shipment and, after commit, its photos.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	storage    ports.PhotoStorage
}

func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory, storage ports.PhotoStorage) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory, storage: storage}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if !s.IsOwnedBy(cmd.ShopperID()) {
		return ErrShipmentNotOwned
	}
	if err = s.EnsureDeletable(); err != nil {
		return err
	}

	if err = repo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	discardPhotos(ctx, h.storage, productPhotos(s.Products()))
	return nil
}

// ModerateShipmentCommandHandler moves a shipment PENDING -> UNDER_REVIEW -> PUBLISHED.
type ModerateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewModerateShipmentCommandHandler(uowFactory ShipmentUoWFactory) ModerateShipmentCommandHandler {
	return ModerateShipmentCommandHandler{uowFactory: uowFactory}
}

func (h ModerateShipmentCommandHandler) Handle(ctx context.Context, cmd ModerateShipmentCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if err = s.Moderate(); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AdvanceShipmentProgressCommandHandler moves an accepted shipment
// ACCEPTED_BY_TRAVELER -> BOOKING_COMPLETED -> DELIVERED_TO_TRAVELER.
type AdvanceShipmentProgressCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewAdvanceShipmentProgressCommandHandler(uowFactory ShipmentUoWFactory) AdvanceShipmentProgressCommandHandler {
	return AdvanceShipmentProgressCommandHandler{uowFactory: uowFactory}
}

func (h AdvanceShipmentProgressCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentProgressCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if s.TravelerID() == nil || !s.TravelerID().IsEqual(cmd.TravelerID()) {
		return ErrNotShipmentTraveler
	}
	if err = s.AdvanceProgress(); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ConfirmDeliveryCommandHandler marks a shipment DELIVERED_TO_SHOPPER and credits
// the reward to the traveler's earnings in the same transaction.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	shipments := uow.ShipmentRepository()
	users := uow.UserRepository()

	s, err := shipments.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if !s.IsOwnedBy(cmd.ShopperID()) {
		return ErrShipmentNotOwned
	}
	if s.TravelerID() == nil {
		return shipment.ErrShipmentNotDelivered
	}
	if err = s.ConfirmDelivery(); err != nil {
		return err
	}

	traveler, err := users.GetForUpdate(ctx, *s.TravelerID())
	if err != nil {
		return err
	}
	if err = traveler.Credit(s.RewardPrice()); err != nil {
		return err
	}

	if err = shipments.Update(ctx, s); err != nil {
		return err
	}
	if err = users.Update(ctx, traveler); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
