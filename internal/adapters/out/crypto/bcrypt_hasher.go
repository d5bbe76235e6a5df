package crypto

import (
	"errors"

	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// BcryptHasher stores passwords as bcrypt hashes.
type BcryptHasher struct {
	cost int
}

var _ ports.PasswordHasher = BcryptHasher{}

// NewBcryptHasher returns a hasher with the given cost; zero means DefaultCost.
func NewBcryptHasher(cost int) (BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return BcryptHasher{}, errs.NewValueIsOutOfRangeError("cost", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return BcryptHasher{cost: cost}, nil
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errs.NewUnauthenticatedErrorWithCause("password does not match", err)
	}
	return err
}
