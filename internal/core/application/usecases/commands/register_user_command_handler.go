package commands

import (
	"context"
	"errors"
	"fmt"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ErrEmailTaken is returned when an account with the e-mail already exists.
var ErrEmailTaken = errs.NewValueIsInvalidErrorWithCause("email", errors.New("already registered"))

// RegisterUserCommandHandler creates an unverified account and mails its verification
// code. If the mail cannot be sent the account is deleted again and the call fails.
type RegisterUserCommandHandler struct {
	uowFactory   UserUoWFactory
	hasher       ports.PasswordHasher
	mailer       ports.Mailer
	storage      ports.PhotoStorage
	defaultPhoto string
	clock        Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	mailer ports.Mailer,
	storage ports.PhotoStorage,
	defaultPhoto string,
	clock Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory:   uowFactory,
		hasher:       hasher,
		mailer:       mailer,
		storage:      storage,
		defaultPhoto: defaultPhoto,
		clock:        clock,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	u, err := h.newUser(ctx, cmd)
	if err != nil {
		return err
	}

	if err = h.add(ctx, u); err != nil {
		h.discardPhoto(ctx, u)
		return err
	}

	if err = h.mailer.SendVerificationCode(ctx, u.Email(), u.Name(), u.VerificationCode()); err != nil {
		if delErr := h.remove(ctx, u.ID()); delErr != nil {
			return errors.Join(fmt.Errorf("send verification email: %w", err), delErr)
		}
		h.discardPhoto(ctx, u)
		return fmt.Errorf("send verification email: %w", err)
	}

	return nil
}

func (h RegisterUserCommandHandler) newUser(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}
	code, err := user.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	photo := h.defaultPhoto
	if cmd.Photo() != nil {
		if photo, err = h.storage.Save(ctx, *cmd.Photo()); err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
	}

	now := h.clock.now()
	u, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Email(), hash, photo, now)
	if err == nil {
		err = u.IssueVerificationCode(code, now)
	}
	if err != nil {
		if cmd.Photo() != nil {
			_ = h.storage.Delete(ctx, photo)
		}
		return nil, err
	}
	return u, nil
}

func (h RegisterUserCommandHandler) add(ctx context.Context, u *user.User) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	_, err := repo.GetByEmail(ctx, u.Email())
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = repo.Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// remove undoes a registration whose verification mail could not be sent.
func (h RegisterUserCommandHandler) remove(ctx context.Context, id kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h RegisterUserCommandHandler) discardPhoto(ctx context.Context, u *user.User) {
	if u.Photo() != h.defaultPhoto {
		_ = h.storage.Delete(ctx, u.Photo())
	}
}
