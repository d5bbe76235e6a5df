package queries

import (
	"context"
	"errors"
	"net/url"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetMeQueryIsNotConstructed     = errors.New("GetMeQuery must be created via NewGetMeQuery constructor")
	ErrListUsersQueryIsNotConstructed = errors.New("ListUsersQuery must be created via NewListUsersQuery constructor")
)

// UserFields is the allow-list of the staff user listing.
var UserFields = Fields{
	"name":          {Column: "name", Kind: KindString},
	"email":         {Column: "email", Kind: KindString},
	"photo":         {Column: "photo", Kind: KindString},
	"role":          {Column: "role", Kind: KindString},
	"verified":      {Column: "verified", Kind: KindBool},
	"earnings":      {Column: "earnings", Kind: KindNumber},
	"averageRating": {Column: "average_rating", Kind: KindNumber},
	"createdAt":     {Column: "created_at", Kind: KindTime},
}

type userRow struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Photo         string
	Role          string
	Verified      bool
	Earnings      float64
	AverageRating int
	CreatedAt     time.Time
}

func (r userRow) view() (UserView, error) {
	id, err := toID(r.ID)
	if err != nil {
		return UserView{}, err
	}
	return UserView{
		ID:            id,
		Name:          r.Name,
		Email:         r.Email,
		Photo:         r.Photo,
		Role:          r.Role,
		Verified:      r.Verified,
		Earnings:      r.Earnings,
		AverageRating: r.AverageRating,
		CreatedAt:     r.CreatedAt,
	}, nil
}

const userColumns = "id, name, email, photo, role, verified, earnings, average_rating, created_at"

// activeUsers hides soft-deleted accounts.
func activeUsers(db *gorm.DB) *gorm.DB {
	return db.Table("users").Where("deleted = ?", false)
}

// GetMeQuery returns the caller's own account.
type GetMeQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetMeQuery(userID kernel.UUID) (GetMeQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetMeQuery{}, err
	}
	return GetMeQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMeQuery) Validate() error {
	return q.guard.Validate(ErrGetMeQueryIsNotConstructed)
}

func (q GetMeQuery) UserID() kernel.UUID { return q.userID }

type GetMeQueryHandler struct {
	db *gorm.DB
}

func NewGetMeQueryHandler(db *gorm.DB) GetMeQueryHandler {
	return GetMeQueryHandler{db: db}
}

func (h GetMeQueryHandler) Handle(ctx context.Context, query GetMeQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	var rows []userRow
	err := h.db.WithContext(ctx).
		Scopes(activeUsers).
		Select(userColumns).
		Where("id = ?", query.UserID().Bytes()).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return UserView{}, err
	}
	if len(rows) == 0 {
		return UserView{}, errs.NewObjectNotFoundError("user", query.UserID().String())
	}
	return rows[0].view()
}

// ListUsersQuery pages through every active account. Search matches name and e-mail.
type ListUsersQuery struct {
	options ListOptions
	guard   guard.ConstructorGuard
}

func NewListUsersQuery(params url.Values) (ListUsersQuery, error) {
	opts, err := NewListOptions(params, UserFields)
	if err != nil {
		return ListUsersQuery{}, err
	}
	return ListUsersQuery{options: opts, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Options() ListOptions { return q.options }

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (Page[UserView], error) {
	if err := query.Validate(); err != nil {
		return Page[UserView]{}, err
	}
	opts := query.Options()

	q := h.db.WithContext(ctx).Scopes(activeUsers, opts.where)
	if opts.Search() != "" {
		pattern := opts.searchPattern()
		q = q.Where("(name ILIKE ? OR email ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[UserView]{}, err
	}

	var rows []userRow
	if err := q.Session(&gorm.Session{}).Select(userColumns).Scopes(opts.window).Find(&rows).Error; err != nil {
		return Page[UserView]{}, err
	}

	users := make([]UserView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return Page[UserView]{}, err
		}
		users = append(users, v)
	}
	return newPage(users, total, opts), nil
}

// findSummaries loads the public profile of the given active users, keyed by ID.
func findSummaries(ctx context.Context, db *gorm.DB, ids ...kernel.UUID) (map[kernel.UUID]UserSummary, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var rows []userRow
	if err := db.WithContext(ctx).
		Scopes(activeUsers).
		Select("id, name, photo, average_rating").
		Where("id IN ?", raw).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[kernel.UUID]UserSummary, len(rows))
	for _, r := range rows {
		id, err := toID(r.ID)
		if err != nil {
			return nil, err
		}
		out[id] = UserSummary{ID: id, Name: r.Name, Photo: r.Photo, AverageRating: r.AverageRating}
	}
	return out, nil
}

func summaryOf(summaries map[kernel.UUID]UserSummary, id *kernel.UUID) *UserSummary {
	if id == nil {
		return nil
	}
	s, ok := summaries[*id]
	if !ok {
		return nil
	}
	return &s
}
