package commands

import (
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ErrInvalidCredentials does not tell an unknown e-mail from a wrong password.
var ErrInvalidCredentials = errs.NewUnauthenticatedError("invalid email or password")

// Session is the outcome of a successful authentication.
type Session struct {
	UserID    kernel.UUID
	Token     string
	ExpiresAt time.Time
}

func issueSession(tokens ports.TokenIssuer, userID kernel.UUID, now time.Time) (Session, error) {
	token, expiresAt, err := tokens.Issue(userID, now)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}
