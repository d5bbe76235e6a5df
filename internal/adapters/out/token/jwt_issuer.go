// Package token issues and verifies HS256 access tokens.
package token

import (
	"errors"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer     = "crowdship"
	minKeySize = 32
)

// JWTIssuer signs tokens whose subject is the user ID.
type JWTIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// NewJWTIssuer needs a secret of at least 32 bytes.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) < minKeySize {
		return nil, errs.NewValueIsOutOfRangeError("jwtSecret length", len(secret), minKeySize, "unbounded")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	return &JWTIssuer{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy that validates expiry against now.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	c := *i
	c.now = now
	return &c
}

func (i *JWTIssuer) Issue(userID kernel.UUID, now time.Time) (string, time.Time, error) {
	if err := userID.Validate(); err != nil {
		return "", time.Time{}, err
	}
	issuedAt := now.UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *JWTIssuer) Parse(token string) (ports.TokenClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ports.TokenClaims{}, mapJWTError(err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return ports.TokenClaims{}, errs.NewUnauthenticatedErrorWithCause("invalid token subject", err)
	}
	if claims.IssuedAt == nil {
		return ports.TokenClaims{}, errs.NewUnauthenticatedError("token has no issue date")
	}

	return ports.TokenClaims{
		UserID:    userID,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return errs.NewUnauthenticatedErrorWithCause("token expired, please log in again", err)
	}
	return errs.NewUnauthenticatedErrorWithCause("invalid token", err)
}
