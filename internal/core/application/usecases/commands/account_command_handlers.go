package commands

import (
	"context"
	"fmt"

	"crowdship/internal/core/ports"
)

// UpdateMeCommandHandler changes the caller's name, password or photo. A password
// change invalidates earlier tokens, so a fresh session is returned with it.
type UpdateMeCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	storage    ports.PhotoStorage
	clock      Clock
}

func NewUpdateMeCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	storage ports.PhotoStorage,
	clock Clock,
) UpdateMeCommandHandler {
	return UpdateMeCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		storage:    storage,
		clock:      clock,
	}
}

// Handle returns a non-nil session only when the password was changed.
func (h UpdateMeCommandHandler) Handle(ctx context.Context, cmd UpdateMeCommand) (session *Session, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	var newHash string
	if cmd.Password() != nil {
		if newHash, err = h.hasher.Hash(*cmd.Password()); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if cmd.Name() != nil {
		if err = u.Rename(*cmd.Name()); err != nil {
			return nil, err
		}
	}

	now := h.clock.now()
	if newHash != "" {
		if err = u.ChangePassword(newHash, now); err != nil {
			return nil, err
		}
	}

	if cmd.Photo() != nil {
		url, saveErr := h.storage.Save(ctx, *cmd.Photo())
		if saveErr != nil {
			return nil, fmt.Errorf("save photo: %w", saveErr)
		}
		defer func() {
			if err != nil {
				_ = h.storage.Delete(ctx, url)
			}
		}()
		u.ChangePhoto(url)
	}

	if err = repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if newHash == "" {
		return nil, nil
	}
	s, err := issueSession(h.tokens, u.ID(), now)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteMeCommandHandler soft-deletes the caller's account. The row stays for the
// shipments, trips and reviews referencing it.
type DeleteMeCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewDeleteMeCommandHandler(uowFactory UserUoWFactory) DeleteMeCommandHandler {
	return DeleteMeCommandHandler{uowFactory: uowFactory}
}

func (h DeleteMeCommandHandler) Handle(ctx context.Context, cmd DeleteMeCommand) error {
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

	repo := uow.UserRepository()
	u, err := repo.GetForUpdate(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	u.SoftDelete()

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
