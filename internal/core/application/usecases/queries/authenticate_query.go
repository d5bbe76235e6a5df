package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAuthenticateQueryIsNotConstructed = errors.New("AuthenticateQuery must be created via NewAuthenticateQuery constructor")

	errTokenMissing   = errs.NewUnauthenticatedError("you are not logged in")
	errUserGone       = errs.NewUnauthenticatedError("the user of this token no longer exists")
	errPasswordChange = errs.NewUnauthenticatedError("password changed after the token was issued")
)

// Principal is the authenticated caller.
type Principal struct {
	UserID kernel.UUID
	Role   user.Role
}

// IsStaff reports whether the caller may use the administrative endpoints.
func (p Principal) IsStaff() bool {
	return p.Role.IsStaff()
}

type AuthenticateQuery struct {
	token string
	guard guard.ConstructorGuard
}

func NewAuthenticateQuery(token string) (AuthenticateQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AuthenticateQuery{}, errTokenMissing
	}
	return AuthenticateQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateQueryIsNotConstructed)
}

func (q AuthenticateQuery) Token() string { return q.token }

// AuthenticateQueryHandler resolves an access token to its user. Tokens of
// soft-deleted users and tokens issued before the last password change are rejected.
type AuthenticateQueryHandler struct {
	db     *gorm.DB
	tokens ports.TokenIssuer
}

func NewAuthenticateQueryHandler(db *gorm.DB, tokens ports.TokenIssuer) (AuthenticateQueryHandler, error) {
	if db == nil {
		return AuthenticateQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	if tokens == nil {
		return AuthenticateQueryHandler{}, errs.NewValueIsRequiredError("tokens")
	}
	return AuthenticateQueryHandler{db: db, tokens: tokens}, nil
}

type principalRow struct {
	ID                uuid.UUID
	Role              string
	PasswordChangedAt *time.Time
}

func (h AuthenticateQueryHandler) Handle(ctx context.Context, query AuthenticateQuery) (Principal, error) {
	if err := query.Validate(); err != nil {
		return Principal{}, err
	}

	claims, err := h.tokens.Parse(query.Token())
	if err != nil {
		return Principal{}, err
	}

	var rows []principalRow
	if err = h.db.WithContext(ctx).
		Scopes(activeUsers).
		Select("id, role, password_changed_at").
		Where("id = ?", claims.UserID.Bytes()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return Principal{}, err
	}
	if len(rows) == 0 {
		return Principal{}, errUserGone
	}

	row := rows[0]
	if row.PasswordChangedAt != nil && row.PasswordChangedAt.After(claims.IssuedAt) {
		return Principal{}, errPasswordChange
	}

	role, err := user.ParseRole(row.Role)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.UserID, Role: role}, nil
}
