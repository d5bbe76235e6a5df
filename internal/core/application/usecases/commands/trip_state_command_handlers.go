package commands

import (
	"context"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/services"
)

// changeTrip loads the trip for update, checks ownership when travelerID is set,
// applies change and persists the result in one transaction.
func changeTrip(
	ctx context.Context,
	uowFactory TripUoWFactory,
	travelerID *kernel.UUID,
	tripID kernel.UUID,
	change func(*trip.Trip) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TripRepository()
	t, err := repo.GetForUpdate(ctx, tripID)
	if err != nil {
		return err
	}
	if travelerID != nil && !t.IsOwnedBy(*travelerID) {
		return services.ErrTripNotOwned
	}

	if err = change(t); err != nil {
		return err
	}

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// DeleteTripCommandHandler removes a trip of the calling traveler.
type DeleteTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewDeleteTripCommandHandler(uowFactory TripUoWFactory) DeleteTripCommandHandler {
	return DeleteTripCommandHandler{uowFactory: uowFactory}
}

// Handle fails with trip.ErrTripNotDeletable once the trip is on travel or completed.
func (h DeleteTripCommandHandler) Handle(ctx context.Context, cmd DeleteTripCommand) error {
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

	repo := uow.TripRepository()
	t, err := repo.GetForUpdate(ctx, cmd.TripID())
	if err != nil {
		return err
	}
	if !t.IsOwnedBy(cmd.TravelerID()) {
		return services.ErrTripNotOwned
	}
	if err = t.EnsureDeletable(); err != nil {
		return err
	}

	if err = repo.Delete(ctx, t.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type CompleteTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewCompleteTripCommandHandler(uowFactory TripUoWFactory) CompleteTripCommandHandler {
	return CompleteTripCommandHandler{uowFactory: uowFactory}
}

func (h CompleteTripCommandHandler) Handle(ctx context.Context, cmd CompleteTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	travelerID := cmd.TravelerID()
	return changeTrip(ctx, h.uowFactory, &travelerID, cmd.TripID(), (*trip.Trip).Complete)
}

type CancelTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewCancelTripCommandHandler(uowFactory TripUoWFactory) CancelTripCommandHandler {
	return CancelTripCommandHandler{uowFactory: uowFactory}
}

func (h CancelTripCommandHandler) Handle(ctx context.Context, cmd CancelTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	travelerID := cmd.TravelerID()
	return changeTrip(ctx, h.uowFactory, &travelerID, cmd.TripID(), (*trip.Trip).Cancel)
}

type PublishTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewPublishTripCommandHandler(uowFactory TripUoWFactory) PublishTripCommandHandler {
	return PublishTripCommandHandler{uowFactory: uowFactory}
}

func (h PublishTripCommandHandler) Handle(ctx context.Context, cmd PublishTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeTrip(ctx, h.uowFactory, nil, cmd.TripID(), (*trip.Trip).Publish)
}
