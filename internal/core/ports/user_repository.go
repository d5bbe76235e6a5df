package ports

import (
	"context"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
)

// UserRepository persists users. Soft-deleted users are invisible to every read.
type UserRepository interface {
	// Add inserts a new user. A duplicate e-mail is reported as errs.ValueIsInvalidError.
	Add(ctx context.Context, aggregate *user.User) error

	Update(ctx context.Context, aggregate *user.User) error

	// Delete removes the row for good. It is only used to undo a registration.
	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate loads the user and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetByEmail(ctx context.Context, email string) (*user.User, error)

	GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error)
}
