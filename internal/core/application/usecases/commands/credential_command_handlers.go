package commands

import (
	"context"
	"errors"
	"fmt"

	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// VerifyEmailCommandHandler confirms an e-mail address and signs the user in.
type VerifyEmailCommandHandler struct {
	uowFactory UserUoWFactory
	tokens     ports.TokenIssuer
	clock      Clock
}

func NewVerifyEmailCommandHandler(uowFactory UserUoWFactory, tokens ports.TokenIssuer, clock Clock) VerifyEmailCommandHandler {
	return VerifyEmailCommandHandler{uowFactory: uowFactory, tokens: tokens, clock: clock}
}

func (h VerifyEmailCommandHandler) Handle(ctx context.Context, cmd VerifyEmailCommand) (Session, error) {
	if err := cmd.Validate(); err != nil {
		return Session{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Session{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Session{}, user.ErrInvalidVerificationCode
	}
	if err != nil {
		return Session{}, err
	}

	now := h.clock.now()
	if err = u.Verify(cmd.Code(), now); err != nil {
		return Session{}, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return Session{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Session{}, err
	}

	return issueSession(h.tokens, u.ID(), now)
}

// LoginResult is either a session or, for an unverified account, a notice that a
// fresh verification code was mailed.
type LoginResult struct {
	Session              Session
	VerificationRequired bool
}

// LoginCommandHandler checks credentials. Unverified users get a new verification
// code instead of a token.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	mailer     ports.Mailer
	clock      Clock
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	mailer ports.Mailer,
	clock Clock,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		mailer:     mailer,
		clock:      clock,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := h.clock.now()
	if u.IsVerified() {
		session, issueErr := issueSession(h.tokens, u.ID(), now)
		if issueErr != nil {
			return LoginResult{}, issueErr
		}
		return LoginResult{Session: session}, nil
	}

	code, err := user.GenerateVerificationCode()
	if err != nil {
		return LoginResult{}, err
	}
	if err = u.IssueVerificationCode(code, now); err != nil {
		return LoginResult{}, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return LoginResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}
	if err = h.mailer.SendVerificationCode(ctx, u.Email(), u.Name(), code); err != nil {
		return LoginResult{}, fmt.Errorf("send verification email: %w", err)
	}

	return LoginResult{VerificationRequired: true}, nil
}

// ForgotPasswordCommandHandler stores the hash of a new reset token and mails the
// reset link. If the mail cannot be sent the token is withdrawn.
type ForgotPasswordCommandHandler struct {
	uowFactory   UserUoWFactory
	mailer       ports.Mailer
	resetURLBase string
	clock        Clock
}

// NewForgotPasswordCommandHandler builds reset links by appending the token to resetURLBase.
func NewForgotPasswordCommandHandler(
	uowFactory UserUoWFactory,
	mailer ports.Mailer,
	resetURLBase string,
	clock Clock,
) ForgotPasswordCommandHandler {
	return ForgotPasswordCommandHandler{
		uowFactory:   uowFactory,
		mailer:       mailer,
		resetURLBase: resetURLBase,
		clock:        clock,
	}
}

func (h ForgotPasswordCommandHandler) Handle(ctx context.Context, cmd ForgotPasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	token, tokenHash, err := user.GenerateResetToken()
	if err != nil {
		return err
	}

	u, err := h.changeByEmail(ctx, cmd.Email(), func(u *user.User) error {
		u.StartPasswordReset(tokenHash, h.clock.now())
		return nil
	})
	if err != nil {
		return err
	}

	if err = h.mailer.SendPasswordReset(ctx, u.Email(), u.Name(), h.resetURLBase+token); err != nil {
		_, cancelErr := h.changeByEmail(ctx, u.Email(), func(u *user.User) error {
			u.CancelPasswordReset()
			return nil
		})
		return errors.Join(fmt.Errorf("send password reset email: %w", err), cancelErr)
	}

	return nil
}

func (h ForgotPasswordCommandHandler) changeByEmail(
	ctx context.Context,
	email string,
	change func(*user.User) error,
) (*user.User, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err = change(u); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPasswordCommandHandler sets a new password with a valid reset token and signs
// the user in.
type ResetPasswordCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	clock      Clock
}

func NewResetPasswordCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	clock Clock,
) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{uowFactory: uowFactory, hasher: hasher, tokens: tokens, clock: clock}
}

func (h ResetPasswordCommandHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) (Session, error) {
	if err := cmd.Validate(); err != nil {
		return Session{}, err
	}

	newHash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return Session{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return Session{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	tokenHash := user.HashResetToken(cmd.Token())
	u, err := repo.GetByResetTokenHash(ctx, tokenHash)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Session{}, user.ErrInvalidResetToken
	}
	if err != nil {
		return Session{}, err
	}

	now := h.clock.now()
	if err = u.ResetPassword(tokenHash, newHash, now); err != nil {
		return Session{}, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return Session{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return Session{}, err
	}

	return issueSession(h.tokens, u.ID(), now)
}
