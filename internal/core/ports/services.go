package ports

import (
	"context"
	"io"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
)

// File is an uploaded image.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// PhotoStorage stores uploaded images and returns their public URL.
type PhotoStorage interface {
	Save(ctx context.Context, file File) (string, error)
	Delete(ctx context.Context, url string) error
}

// Mailer delivers transactional e-mails.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// TokenClaims is what an access token asserts.
type TokenClaims struct {
	UserID    kernel.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(userID kernel.UUID, now time.Time) (token string, expiresAt time.Time, err error)
	// Parse returns an errs.UnauthenticatedError for malformed, forged or expired tokens.
	Parse(token string) (TokenClaims, error)
}

// EventPublisher announces committed changes of shipments and trips.
type EventPublisher interface {
	PublishShipmentChanged(ctx context.Context, aggregate *shipment.Shipment) error
	PublishTripChanged(ctx context.Context, aggregate *trip.Trip) error
}
