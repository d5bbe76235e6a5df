package commands

import (
	"errors"
	"strings"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrVerifyEmailCommandIsNotConstructed = errors.New(
		"VerifyEmailCommand must be created via NewVerifyEmailCommand constructor",
	)
	ErrLoginCommandIsNotConstructed = errors.New(
		"LoginCommand must be created via NewLoginCommand constructor",
	)
	ErrForgotPasswordCommandIsNotConstructed = errors.New(
		"ForgotPasswordCommand must be created via NewForgotPasswordCommand constructor",
	)
	ErrResetPasswordCommandIsNotConstructed = errors.New(
		"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
	)
	ErrUpdateMeCommandIsNotConstructed = errors.New(
		"UpdateMeCommand must be created via NewUpdateMeCommand constructor",
	)
	ErrDeleteMeCommandIsNotConstructed = errors.New(
		"DeleteMeCommand must be created via NewDeleteMeCommand constructor",
	)
)

// RegisterUserCommand signs up a new account. The photo is optional.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	email    string
	password string
	photo    *ports.File

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID kernel.UUID, name, email, password string, photo *ports.File) (RegisterUserCommand, error) {
	normalized, emailErr := user.NormalizeEmail(email)
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(userID.Validate(), nameErr, emailErr, user.ValidatePassword(password)); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:   userID,
		name:     name,
		email:    normalized,
		password: password,
		photo:    photo,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterUserCommand) Name() string        { return c.name }
func (c RegisterUserCommand) Email() string       { return c.email }
func (c RegisterUserCommand) Password() string    { return c.password }
func (c RegisterUserCommand) Photo() *ports.File  { return c.photo }

// VerifyEmailCommand confirms an address with the 4-digit code mailed to it.
type VerifyEmailCommand struct { //nolint:recvcheck //using for validation
	email string
	code  string

	guard guard.ConstructorGuard
}

func NewVerifyEmailCommand(email, code string) (VerifyEmailCommand, error) {
	normalized, emailErr := user.NormalizeEmail(email)
	var codeErr error
	if strings.TrimSpace(code) == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if err := errors.Join(emailErr, codeErr); err != nil {
		return VerifyEmailCommand{}, err
	}
	return VerifyEmailCommand{email: normalized, code: strings.TrimSpace(code), guard: guard.NewConstructorGuard()}, nil
}

func (c VerifyEmailCommand) Validate() error {
	return c.guard.Validate(ErrVerifyEmailCommandIsNotConstructed)
}

func (c VerifyEmailCommand) Email() string { return c.email }
func (c VerifyEmailCommand) Code() string  { return c.code }

// LoginCommand exchanges credentials for an access token.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	normalized, emailErr := user.NormalizeEmail(email)
	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{email: normalized, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string    { return c.email }
func (c LoginCommand) Password() string { return c.password }

// ForgotPasswordCommand mails a password-reset link.
type ForgotPasswordCommand struct { //nolint:recvcheck //using for validation
	email string
	guard guard.ConstructorGuard
}

func NewForgotPasswordCommand(email string) (ForgotPasswordCommand, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return ForgotPasswordCommand{}, err
	}
	return ForgotPasswordCommand{email: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (c ForgotPasswordCommand) Validate() error {
	return c.guard.Validate(ErrForgotPasswordCommandIsNotConstructed)
}

func (c ForgotPasswordCommand) Email() string { return c.email }

// ResetPasswordCommand sets a new password using a mailed reset token.
type ResetPasswordCommand struct { //nolint:recvcheck //using for validation
	token    string
	password string

	guard guard.ConstructorGuard
}

func NewResetPasswordCommand(token, password string) (ResetPasswordCommand, error) {
	var tokenErr error
	if strings.TrimSpace(token) == "" {
		tokenErr = errs.NewValueIsRequiredError("resetToken")
	}
	if err := errors.Join(tokenErr, user.ValidatePassword(password)); err != nil {
		return ResetPasswordCommand{}, err
	}
	return ResetPasswordCommand{token: strings.TrimSpace(token), password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

func (c ResetPasswordCommand) Token() string    { return c.token }
func (c ResetPasswordCommand) Password() string { return c.password }

// UpdateMeCommand changes the caller's own profile. Only name, password and photo
// may change; nil fields are left untouched.
type UpdateMeCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     *string
	password *string
	photo    *ports.File

	guard guard.ConstructorGuard
}

func NewUpdateMeCommand(userID kernel.UUID, name, password *string, photo *ports.File) (UpdateMeCommand, error) {
	if err := userID.Validate(); err != nil {
		return UpdateMeCommand{}, err
	}
	if name == nil && password == nil && photo == nil {
		return UpdateMeCommand{}, errs.NewValueIsRequiredError("name, password or photo")
	}
	if password != nil {
		if err := user.ValidatePassword(*password); err != nil {
			return UpdateMeCommand{}, err
		}
	}
	return UpdateMeCommand{
		userID:   userID,
		name:     name,
		password: password,
		photo:    photo,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMeCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMeCommandIsNotConstructed)
}

func (c UpdateMeCommand) UserID() kernel.UUID { return c.userID }
func (c UpdateMeCommand) Name() *string       { return c.name }
func (c UpdateMeCommand) Password() *string   { return c.password }
func (c UpdateMeCommand) Photo() *ports.File  { return c.photo }

// DeleteMeCommand soft-deletes the caller's account.
type DeleteMeCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewDeleteMeCommand(userID kernel.UUID) (DeleteMeCommand, error) {
	if err := userID.Validate(); err != nil {
		return DeleteMeCommand{}, err
	}
	return DeleteMeCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteMeCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMeCommandIsNotConstructed)
}

func (c DeleteMeCommand) UserID() kernel.UUID { return c.userID }
