package commands

import (
	"context"
)

// ExpireShipmentsCommandHandler moves expired open shipments to CANCELED so they no
// longer count against their shopper's quota.
type ExpireShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      Clock
}

func NewExpireShipmentsCommandHandler(uowFactory ShipmentUoWFactory, clock Clock) ExpireShipmentsCommandHandler {
	return ExpireShipmentsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle cancels up to one batch and returns how many shipments were cancelled.
func (h ExpireShipmentsCommandHandler) Handle(ctx context.Context, cmd ExpireShipmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	now := h.clock.now()
	expired, err := repo.FindExpired(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	cancelled := 0
	for _, s := range expired {
		if !s.IsExpired(now) {
			continue
		}
		if err = s.Cancel(); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, s); err != nil {
			return 0, err
		}
		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cancelled, nil
}
