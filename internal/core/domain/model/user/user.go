package user

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
)

const (
	NameMaxLength         = 50
	PasswordMinLength     = 8
	PasswordMaxLength     = 72
	VerificationCodeTTL   = 30 * time.Minute
	PasswordResetTokenTTL = 10 * time.Minute
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrInvalidVerificationCode covers wrong and expired codes alike.
	ErrInvalidVerificationCode = errs.NewValueIsInvalidError("verification code is invalid or has expired")
	// ErrInvalidResetToken covers wrong and expired reset tokens alike.
	ErrInvalidResetToken = errs.NewValueIsInvalidError("reset token is invalid or has expired")
	ErrAlreadyVerified   = errs.NewRuleViolationError("email is already verified")
)

// User is an account of the marketplace. Passwords only ever reach the aggregate
// as hashes.
type User struct {
	id                  kernel.UUID
	name                string
	email               string
	passwordHash        string
	photo               string
	role                Role
	verified            bool
	deleted             bool
	earnings            float64
	averageRating       int
	verificationCode    string
	verificationExpires *time.Time
	resetTokenHash      string
	resetTokenExpires   *time.Time
	passwordChangedAt   *time.Time
	createdAt           time.Time
	isConstructed       bool
}

// NewUser registers an unverified account with the USER role.
func NewUser(id kernel.UUID, name, email, passwordHash, photo string, now time.Time) (*User, error) {
	u := &User{
		role:          RoleUser,
		photo:         photo,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return u, nil
}

type RestoreParams struct {
	ID                  kernel.UUID
	Name                string
	Email               string
	PasswordHash        string
	Photo               string
	Role                Role
	Verified            bool
	Deleted             bool
	Earnings            float64
	AverageRating       int
	VerificationCode    string
	VerificationExpires *time.Time
	ResetTokenHash      string
	ResetTokenExpires   *time.Time
	PasswordChangedAt   *time.Time
	CreatedAt           time.Time
}

func RestoreUser(p RestoreParams) (*User, error) {
	u := &User{
		photo:               p.Photo,
		verified:            p.Verified,
		deleted:             p.Deleted,
		earnings:            p.Earnings,
		averageRating:       p.AverageRating,
		verificationCode:    p.VerificationCode,
		verificationExpires: p.VerificationExpires,
		resetTokenHash:      p.ResetTokenHash,
		resetTokenExpires:   p.ResetTokenExpires,
		passwordChangedAt:   p.PasswordChangedAt,
		createdAt:           p.CreatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		u.setID(p.ID),
		u.setName(p.Name),
		u.setEmail(p.Email),
		u.setPasswordHash(p.PasswordHash),
		p.Role.Validate(),
	); err != nil {
		return nil, err
	}
	u.role = p.Role

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID                 { return u.id }
func (u *User) Name() string                    { return u.name }
func (u *User) Email() string                   { return u.email }
func (u *User) PasswordHash() string            { return u.passwordHash }
func (u *User) Photo() string                   { return u.photo }
func (u *User) Role() Role                      { return u.role }
func (u *User) IsVerified() bool                { return u.verified }
func (u *User) IsDeleted() bool                 { return u.deleted }
func (u *User) Earnings() float64               { return u.earnings }
func (u *User) AverageRating() int              { return u.averageRating }
func (u *User) VerificationCode() string        { return u.verificationCode }
func (u *User) VerificationExpires() *time.Time { return u.verificationExpires }
func (u *User) ResetTokenHash() string          { return u.resetTokenHash }
func (u *User) ResetTokenExpires() *time.Time   { return u.resetTokenExpires }
func (u *User) PasswordChangedAt() *time.Time   { return u.passwordChangedAt }
func (u *User) CreatedAt() time.Time            { return u.createdAt }

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.role == r {
			return true
		}
	}
	return false
}

// IssueVerificationCode replaces any previous code; the new one is valid for
// VerificationCodeTTL.
func (u *User) IssueVerificationCode(code string, now time.Time) error {
	if u.verified {
		return ErrAlreadyVerified
	}
	if len(code) != 4 {
		return errs.NewValueIsInvalidErrorWithCause("verification code", fmt.Errorf("%q is not a 4-digit code", code))
	}
	expires := now.Add(VerificationCodeTTL).UTC()
	u.verificationCode = code
	u.verificationExpires = &expires
	return nil
}

// Verify marks the email as verified when code matches an unexpired verification code.
func (u *User) Verify(code string, now time.Time) error {
	if u.verified {
		return ErrAlreadyVerified
	}
	if u.verificationCode == "" || u.verificationExpires == nil || !now.Before(*u.verificationExpires) {
		return ErrInvalidVerificationCode
	}
	if subtle.ConstantTimeCompare([]byte(u.verificationCode), []byte(code)) != 1 {
		return ErrInvalidVerificationCode
	}

	u.verified = true
	u.verificationCode = ""
	u.verificationExpires = nil
	return nil
}

// StartPasswordReset stores the hash of a freshly generated reset token.
func (u *User) StartPasswordReset(tokenHash string, now time.Time) {
	expires := now.Add(PasswordResetTokenTTL).UTC()
	u.resetTokenHash = tokenHash
	u.resetTokenExpires = &expires
}

// CancelPasswordReset discards the pending reset token, e.g. when mailing it failed.
func (u *User) CancelPasswordReset() {
	u.resetTokenHash = ""
	u.resetTokenExpires = nil
}

// ResetPassword replaces the password when tokenHash matches an unexpired reset token.
func (u *User) ResetPassword(tokenHash, newPasswordHash string, now time.Time) error {
	if u.resetTokenHash == "" || u.resetTokenExpires == nil || !now.Before(*u.resetTokenExpires) ||
		subtle.ConstantTimeCompare([]byte(u.resetTokenHash), []byte(tokenHash)) != 1 {
		return ErrInvalidResetToken
	}
	if err := u.ChangePassword(newPasswordHash, now); err != nil {
		return err
	}
	u.CancelPasswordReset()
	return nil
}

// ChangePassword stores a new hash. The change is dated one second in the past so
// a token issued in the same second as the change stays valid.
func (u *User) ChangePassword(newPasswordHash string, now time.Time) error {
	if err := u.setPasswordHash(newPasswordHash); err != nil {
		return err
	}
	changed := now.Add(-time.Second).UTC()
	u.passwordChangedAt = &changed
	return nil
}

// ChangedPasswordAfter reports whether the password changed after a token issued at issuedAt.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	return u.passwordChangedAt != nil && u.passwordChangedAt.After(issuedAt)
}

// Rename changes the display name.
func (u *User) Rename(name string) error {
	return u.setName(name)
}

func (u *User) ChangePhoto(photo string) {
	u.photo = photo
}

func (u *User) SoftDelete() {
	u.deleted = true
}

// Credit adds the reward of a delivered shipment to the traveler's earnings.
func (u *User) Credit(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not greater than 0", amount))
	}
	u.earnings += amount
	return nil
}

func (u *User) SetAverageRating(rating int) error {
	if rating < 0 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("average rating", rating, 0, 5)
	}
	u.averageRating = rating
	return nil
}

// ValidatePassword checks a plain-text password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if n := len(password); n < PasswordMinLength || n > PasswordMaxLength {
		return errs.NewValueIsOutOfRangeError("password length", n, PasswordMinLength, PasswordMaxLength)
	}
	return nil
}

// NormalizeEmail lower-cases and validates an e-mail address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}
	return email, nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > NameMaxLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, NameMaxLength)
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.email = normalized
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}
