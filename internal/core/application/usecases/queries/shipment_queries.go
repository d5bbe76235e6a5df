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
	ErrListShipmentsQueryIsNotConstructed = errors.New(
		"ListShipmentsQuery must be created via NewListShipmentsQuery or NewListMyShipmentsQuery constructor",
	)
	ErrGetShipmentQueryIsNotConstructed = errors.New("GetShipmentQuery must be created via NewGetShipmentQuery constructor")
)

// ShipmentFields is the allow-list of shipment listings.
var ShipmentFields = Fields{
	"shopperId":           {Column: "shopper_id", Kind: KindUUID},
	"travelerId":          {Column: "traveler_id", Kind: KindUUID},
	"tripId":              {Column: "trip_id", Kind: KindUUID},
	"products":            {},
	"from":                {Column: "from_country", Kind: KindString},
	"to":                  {Column: "to_country", Kind: KindString},
	"desiredDeliveryDate": {Column: "desired_delivery_date", Kind: KindTime},
	"rewardPrice":         {Column: "reward_price", Kind: KindNumber},
	"fees":                {Column: "fees", Kind: KindNumber},
	"totalPrice":          {Column: "total_price", Kind: KindNumber},
	"totalWeight":         {Column: "total_weight", Kind: KindNumber},
	"status":              {Column: "status", Kind: KindString},
	"statusHistory":       {},
	"reviewId":            {Column: "review_id", Kind: KindUUID},
	"createdAt":           {Column: "created_at", Kind: KindTime},
}

type shipmentRow struct {
	ID                  uuid.UUID
	ShopperID           uuid.UUID
	FromCountry         string
	ToCountry           string
	DesiredDeliveryDate time.Time
	RewardPrice         float64
	Fees                float64
	TotalPrice          float64
	TotalWeight         float64
	Status              string
	StatusHistory       pq.StringArray `gorm:"type:text[]"`
	TripID              *uuid.UUID
	TravelerID          *uuid.UUID
	ReviewID            *uuid.UUID
	CreatedAt           time.Time
}

type productRow struct {
	ShipmentID uuid.UUID
	Position   int
	Name       string
	Quantity   int
	Category   string
	Link       string
	Price      float64
	Weight     float64
	Photo      string
}

func (r shipmentRow) view(products []ProductView) (ShipmentView, error) {
	id, err := toID(r.ID)
	if err != nil {
		return ShipmentView{}, err
	}
	shopperID, err := toID(r.ShopperID)
	if err != nil {
		return ShipmentView{}, err
	}
	tripID, err := toOptionalID(r.TripID)
	if err != nil {
		return ShipmentView{}, err
	}
	travelerID, err := toOptionalID(r.TravelerID)
	if err != nil {
		return ShipmentView{}, err
	}
	reviewID, err := toOptionalID(r.ReviewID)
	if err != nil {
		return ShipmentView{}, err
	}

	if products == nil {
		products = []ProductView{}
	}
	return ShipmentView{
		ID:                  id,
		ShopperID:           shopperID,
		Products:            products,
		From:                r.FromCountry,
		To:                  r.ToCountry,
		DesiredDeliveryDate: r.DesiredDeliveryDate.UTC(),
		RewardPrice:         r.RewardPrice,
		Fees:                r.Fees,
		TotalPrice:          r.TotalPrice,
		TotalWeight:         r.TotalWeight,
		Status:              r.Status,
		StatusHistory:       []string(r.StatusHistory),
		TripID:              tripID,
		TravelerID:          travelerID,
		ReviewID:            reviewID,
		CreatedAt:           r.CreatedAt.UTC(),
	}, nil
}

// loadShipmentViews attaches the products of every row, in product order.
func loadShipmentViews(ctx context.Context, db *gorm.DB, rows []shipmentRow) ([]ShipmentView, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	products := make(map[uuid.UUID][]ProductView, len(rows))
	if len(ids) > 0 {
		var productRows []productRow
		if err := db.WithContext(ctx).
			Table("shipment_products").
			Where("shipment_id IN ?", ids).
			Order("shipment_id, position").
			Find(&productRows).Error; err != nil {
			return nil, err
		}
		for _, p := range productRows {
			products[p.ShipmentID] = append(products[p.ShipmentID], ProductView{
				Name:     p.Name,
				Quantity: p.Quantity,
				Category: p.Category,
				Link:     p.Link,
				Price:    p.Price,
				Weight:   p.Weight,
				Photo:    p.Photo,
			})
		}
	}

	views := make([]ShipmentView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view(products[r.ID])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ListShipmentsQuery pages through shipments. The public listing only shows
// shipments whose desired delivery date is still ahead; a shopper's own listing
// shows all of theirs. Search matches product names.
type ListShipmentsQuery struct {
	options   ListOptions
	shopperID *kernel.UUID
	guard     guard.ConstructorGuard
}

func NewListShipmentsQuery(params url.Values) (ListShipmentsQuery, error) {
	opts, err := NewListOptions(params, ShipmentFields)
	if err != nil {
		return ListShipmentsQuery{}, err
	}
	return ListShipmentsQuery{options: opts, guard: guard.NewConstructorGuard()}, nil
}

func NewListMyShipmentsQuery(shopperID kernel.UUID, params url.Values) (ListShipmentsQuery, error) {
	if err := shopperID.Validate(); err != nil {
		return ListShipmentsQuery{}, err
	}
	q, err := NewListShipmentsQuery(params)
	if err != nil {
		return ListShipmentsQuery{}, err
	}
	q.shopperID = &shopperID
	return q, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Options() ListOptions    { return q.options }
func (q ListShipmentsQuery) ShopperID() *kernel.UUID { return q.shopperID }

type ListShipmentsQueryHandler struct {
	db    *gorm.DB
	clock Clock
}

func NewListShipmentsQueryHandler(db *gorm.DB, clock Clock) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db, clock: clock}
}

func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) (Page[ShipmentView], error) {
	if err := query.Validate(); err != nil {
		return Page[ShipmentView]{}, err
	}
	opts := query.Options()

	q := h.db.WithContext(ctx).Table("shipments").Scopes(opts.where)
	if query.ShopperID() != nil {
		q = q.Where("shopper_id = ?", query.ShopperID().Bytes())
	} else {
		q = q.Where("desired_delivery_date > ?", h.clock.now())
	}
	if opts.Search() != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM shipment_products p WHERE p.shipment_id = shipments.id AND p.name ILIKE ?)",
			opts.searchPattern(),
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[ShipmentView]{}, err
	}

	var rows []shipmentRow
	if err := q.Session(&gorm.Session{}).Scopes(opts.window).Find(&rows).Error; err != nil {
		return Page[ShipmentView]{}, err
	}

	views, err := loadShipmentViews(ctx, h.db, rows)
	if err != nil {
		return Page[ShipmentView]{}, err
	}
	return newPage(views, total, opts), nil
}

// GetShipmentQuery returns one shipment with its shopper, traveler and review.
type GetShipmentQuery struct {
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() kernel.UUID { return q.shipmentID }

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentDetails, error) {
	if err := query.Validate(); err != nil {
		return ShipmentDetails{}, err
	}

	var rows []shipmentRow
	if err := h.db.WithContext(ctx).
		Table("shipments").
		Where("id = ?", query.ShipmentID().Bytes()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return ShipmentDetails{}, err
	}
	if len(rows) == 0 {
		return ShipmentDetails{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	views, err := loadShipmentViews(ctx, h.db, rows)
	if err != nil {
		return ShipmentDetails{}, err
	}
	details := ShipmentDetails{ShipmentView: views[0]}

	participants := []kernel.UUID{details.ShopperID}
	if details.TravelerID != nil {
		participants = append(participants, *details.TravelerID)
	}
	summaries, err := findSummaries(ctx, h.db, participants...)
	if err != nil {
		return ShipmentDetails{}, err
	}
	details.Shopper = summaryOf(summaries, &details.ShopperID)
	details.Traveler = summaryOf(summaries, details.TravelerID)

	if details.ReviewID != nil {
		r, found, reviewErr := findReview(ctx, h.db, *details.ReviewID)
		if reviewErr != nil {
			return ShipmentDetails{}, reviewErr
		}
		if found {
			details.Review = &r
		}
	}

	return details, nil
}

type reviewRow struct {
	ID         uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Subject    string
	SubjectID  uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func findReview(ctx context.Context, db *gorm.DB, id kernel.UUID) (ReviewView, bool, error) {
	var rows []reviewRow
	if err := db.WithContext(ctx).Table("reviews").Where("id = ?", id.Bytes()).Limit(1).Find(&rows).Error; err != nil {
		return ReviewView{}, false, err
	}
	if len(rows) == 0 {
		return ReviewView{}, false, nil
	}

	r := rows[0]
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{r.ID, r.ReviewerID, r.RevieweeID, r.SubjectID} {
		parsed, err := toID(raw)
		if err != nil {
			return ReviewView{}, false, err
		}
		ids = append(ids, parsed)
	}
	return ReviewView{
		ID:         ids[0],
		ReviewerID: ids[1],
		RevieweeID: ids[2],
		Subject:    r.Subject,
		SubjectID:  ids[3],
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt.UTC(),
	}, true, nil
}
