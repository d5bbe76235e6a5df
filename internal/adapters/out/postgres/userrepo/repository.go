package userrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM. Every read goes
// through the notDeleted scope.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

// Add inserts the user. A taken e-mail is reported as an invalid value; the
// connection must translate driver errors (gorm.Config.TranslateError).
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%s is already registered", dto.Email))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Updates(dto.columns())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%s is already registered", dto.Email))
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&UserDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.first(r.db.WithContext(ctx), email, "email = ?", email)
}

func (r *GormUserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	if hash == "" {
		return nil, errs.NewValueIsRequiredError("reset token")
	}
	return r.first(r.db.WithContext(ctx), "reset token", "reset_token_hash = ?", hash)
}

func (r *GormUserRepository) first(db *gorm.DB, key string, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := db.Scopes(notDeleted).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", key)
		}
		return nil, err
	}
	return toDomain(dto)
}
