// Package userrepo persists user accounts in the "users" table.
package userrepo

import (
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(50);not null"`
	Email               string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash        string    `gorm:"not null"`
	Photo               string    `gorm:"not null;default:''"`
	Role                string    `gorm:"type:varchar(16);not null"`
	Verified            bool      `gorm:"not null;default:false"`
	Deleted             bool      `gorm:"not null;default:false;index"`
	Earnings            float64   `gorm:"not null;default:0"`
	AverageRating       int       `gorm:"type:smallint;not null;default:0"`
	VerificationCode    string    `gorm:"type:varchar(4);not null;default:''"`
	VerificationExpires *time.Time
	ResetTokenHash      string `gorm:"type:varchar(64);not null;default:'';index"`
	ResetTokenExpires   *time.Time
	PasswordChangedAt   *time.Time
	CreatedAt           time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:                  u.ID().Bytes(),
		Name:                u.Name(),
		Email:               u.Email(),
		PasswordHash:        u.PasswordHash(),
		Photo:               u.Photo(),
		Role:                u.Role().String(),
		Verified:            u.IsVerified(),
		Deleted:             u.IsDeleted(),
		Earnings:            u.Earnings(),
		AverageRating:       u.AverageRating(),
		VerificationCode:    u.VerificationCode(),
		VerificationExpires: u.VerificationExpires(),
		ResetTokenHash:      u.ResetTokenHash(),
		ResetTokenExpires:   u.ResetTokenExpires(),
		PasswordChangedAt:   u.PasswordChangedAt(),
		CreatedAt:           u.CreatedAt().UTC(),
	}
}

func (dto UserDTO) columns() map[string]any {
	return map[string]any{
		"name":                 dto.Name,
		"email":                dto.Email,
		"password_hash":        dto.PasswordHash,
		"photo":                dto.Photo,
		"role":                 dto.Role,
		"verified":             dto.Verified,
		"deleted":              dto.Deleted,
		"earnings":             dto.Earnings,
		"average_rating":       dto.AverageRating,
		"verification_code":    dto.VerificationCode,
		"verification_expires": dto.VerificationExpires,
		"reset_token_hash":     dto.ResetTokenHash,
		"reset_token_expires":  dto.ResetTokenExpires,
		"password_changed_at":  dto.PasswordChangedAt,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.RestoreParams{
		ID:                  id,
		Name:                dto.Name,
		Email:               dto.Email,
		PasswordHash:        dto.PasswordHash,
		Photo:               dto.Photo,
		Role:                role,
		Verified:            dto.Verified,
		Deleted:             dto.Deleted,
		Earnings:            dto.Earnings,
		AverageRating:       dto.AverageRating,
		VerificationCode:    dto.VerificationCode,
		VerificationExpires: utc(dto.VerificationExpires),
		ResetTokenHash:      dto.ResetTokenHash,
		ResetTokenExpires:   utc(dto.ResetTokenExpires),
		PasswordChangedAt:   utc(dto.PasswordChangedAt),
		CreatedAt:           dto.CreatedAt.UTC(),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
