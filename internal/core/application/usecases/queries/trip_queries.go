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
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrListTripsQueryIsNotConstructed = errors.New(
		"ListTripsQuery must be created via NewListTripsQuery or NewListMyTripsQuery constructor",
	)
	ErrGetTripQueryIsNotConstructed = errors.New("GetTripQuery must be created via NewGetTripQuery constructor")
)

// TripFields is the allow-list of trip listings.
var TripFields = Fields{
	"travelerId":     {Column: "traveler_id", Kind: KindUUID},
	"from":           {Column: "from_country", Kind: KindString},
	"to":             {Column: "to_country", Kind: KindString},
	"departureDate":  {Column: "departure_date", Kind: KindTime},
	"availableSpace": {Column: "available_space", Kind: KindNumber},
	"consumedSpace":  {Column: "consumed_space", Kind: KindNumber},
	"status":         {Column: "status", Kind: KindString},
	"statusHistory":  {},
	"shopperIds":     {},
	"shipmentIds":    {},
	"reviewIds":      {},
	"createdAt":      {Column: "created_at", Kind: KindTime},
}

type tripRow struct {
	ID             uuid.UUID
	TravelerID     uuid.UUID
	FromCountry    string
	ToCountry      string
	DepartureDate  time.Time
	AvailableSpace float64
	ConsumedSpace  float64
	Status         string
	StatusHistory  pq.StringArray `gorm:"type:text[]"`
	ShopperIDs     pq.StringArray `gorm:"column:shopper_ids;type:text[]"`
	ShipmentIDs    pq.StringArray `gorm:"column:shipment_ids;type:text[]"`
	ReviewIDs      pq.StringArray `gorm:"column:review_ids;type:text[]"`
	CreatedAt      time.Time
}

func (r tripRow) view() (TripView, error) {
	id, err := toID(r.ID)
	if err != nil {
		return TripView{}, err
	}
	travelerID, err := toID(r.TravelerID)
	if err != nil {
		return TripView{}, err
	}
	shopperIDs, err := toIDs(r.ShopperIDs)
	if err != nil {
		return TripView{}, err
	}
	shipmentIDs, err := toIDs(r.ShipmentIDs)
	if err != nil {
		return TripView{}, err
	}
	reviewIDs, err := toIDs(r.ReviewIDs)
	if err != nil {
		return TripView{}, err
	}

	return TripView{
		ID:             id,
		TravelerID:     travelerID,
		From:           r.FromCountry,
		To:             r.ToCountry,
		DepartureDate:  r.DepartureDate.UTC(),
		AvailableSpace: r.AvailableSpace,
		ConsumedSpace:  r.ConsumedSpace,
		Status:         r.Status,
		StatusHistory:  []string(r.StatusHistory),
		ShopperIDs:     shopperIDs,
		ShipmentIDs:    shipmentIDs,
		ReviewIDs:      reviewIDs,
		CreatedAt:      r.CreatedAt.UTC(),
	}, nil
}

// ListTripsQuery pages through trips. The public listing only shows trips that
// depart in the future and still have space; a traveler's own listing shows all
// of theirs. Search matches the country codes of the route.
type ListTripsQuery struct {
	options    ListOptions
	travelerID *kernel.UUID
	guard      guard.ConstructorGuard
}

func NewListTripsQuery(params url.Values) (ListTripsQuery, error) {
	opts, err := NewListOptions(params, TripFields)
	if err != nil {
		return ListTripsQuery{}, err
	}
	return ListTripsQuery{options: opts, guard: guard.NewConstructorGuard()}, nil
}

func NewListMyTripsQuery(travelerID kernel.UUID, params url.Values) (ListTripsQuery, error) {
	if err := travelerID.Validate(); err != nil {
		return ListTripsQuery{}, err
	}
	q, err := NewListTripsQuery(params)
	if err != nil {
		return ListTripsQuery{}, err
	}
	q.travelerID = &travelerID
	return q, nil
}

func (q ListTripsQuery) Validate() error {
	return q.guard.Validate(ErrListTripsQueryIsNotConstructed)
}

func (q ListTripsQuery) Options() ListOptions     { return q.options }
func (q ListTripsQuery) TravelerID() *kernel.UUID { return q.travelerID }

type ListTripsQueryHandler struct {
	db    *gorm.DB
	clock Clock
}

func NewListTripsQueryHandler(db *gorm.DB, clock Clock) ListTripsQueryHandler {
	return ListTripsQueryHandler{db: db, clock: clock}
}

func (h ListTripsQueryHandler) Handle(ctx context.Context, query ListTripsQuery) (Page[TripView], error) {
	if err := query.Validate(); err != nil {
		return Page[TripView]{}, err
	}
	opts := query.Options()

	q := h.db.WithContext(ctx).Table("trips").Scopes(opts.where)
	if query.TravelerID() != nil {
		q = q.Where("traveler_id = ?", query.TravelerID().Bytes())
	} else {
		q = q.Where("departure_date > ? AND available_space > 0", h.clock.now())
	}
	if opts.Search() != "" {
		pattern := opts.searchPattern()
		q = q.Where("(from_country ILIKE ? OR to_country ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[TripView]{}, err
	}

	var rows []tripRow
	if err := q.Session(&gorm.Session{}).Scopes(opts.window).Find(&rows).Error; err != nil {
		return Page[TripView]{}, err
	}

	trips := make([]TripView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return Page[TripView]{}, err
		}
		trips = append(trips, v)
	}
	return newPage(trips, total, opts), nil
}

// GetTripQuery returns one trip with its traveler.
type GetTripQuery struct {
	tripID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetTripQuery(tripID kernel.UUID) (GetTripQuery, error) {
	if err := tripID.Validate(); err != nil {
		return GetTripQuery{}, err
	}
	return GetTripQuery{tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTripQuery) Validate() error {
	return q.guard.Validate(ErrGetTripQueryIsNotConstructed)
}

func (q GetTripQuery) TripID() kernel.UUID { return q.tripID }

type GetTripQueryHandler struct {
	db *gorm.DB
}

func NewGetTripQueryHandler(db *gorm.DB) GetTripQueryHandler {
	return GetTripQueryHandler{db: db}
}

func (h GetTripQueryHandler) Handle(ctx context.Context, query GetTripQuery) (TripDetails, error) {
	if err := query.Validate(); err != nil {
		return TripDetails{}, err
	}

	var rows []tripRow
	if err := h.db.WithContext(ctx).
		Table("trips").
		Where("id = ?", query.TripID().Bytes()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return TripDetails{}, err
	}
	if len(rows) == 0 {
		return TripDetails{}, errs.NewObjectNotFoundError("trip", query.TripID().String())
	}

	view, err := rows[0].view()
	if err != nil {
		return TripDetails{}, err
	}

	summaries, err := findSummaries(ctx, h.db, view.TravelerID)
	if err != nil {
		return TripDetails{}, err
	}
	return TripDetails{TripView: view, Traveler: summaryOf(summaries, &view.TravelerID)}, nil
}
