package queries

import (
	"time"

	"crowdship/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Clock returns the current time. A nil Clock reads the wall clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// Page is one window of a listing together with the number of matching rows.
type Page[T any] struct {
	Items  []T
	Total  int64
	Page   int
	Limit  int
	Fields []string
}

func newPage[T any](items []T, total int64, opts ListOptions) Page[T] {
	return Page[T]{Items: items, Total: total, Page: opts.Page(), Limit: opts.Limit(), Fields: opts.Fields()}
}

type ProductView struct {
	Name     string
	Quantity int
	Category string
	Link     string
	Price    float64
	Weight   float64
	Photo    string
}

type ShipmentView struct {
	ID                  kernel.UUID
	ShopperID           kernel.UUID
	Products            []ProductView
	From                string
	To                  string
	DesiredDeliveryDate time.Time
	RewardPrice         float64
	Fees                float64
	TotalPrice          float64
	TotalWeight         float64
	Status              string
	StatusHistory       []string
	TripID              *kernel.UUID
	TravelerID          *kernel.UUID
	ReviewID            *kernel.UUID
	CreatedAt           time.Time
}

// ShipmentDetails is a shipment with its participants and review resolved.
type ShipmentDetails struct {
	ShipmentView
	Shopper  *UserSummary
	Traveler *UserSummary
	Review   *ReviewView
}

type TripView struct {
	ID             kernel.UUID
	TravelerID     kernel.UUID
	From           string
	To             string
	DepartureDate  time.Time
	AvailableSpace float64
	ConsumedSpace  float64
	Status         string
	StatusHistory  []string
	ShopperIDs     []kernel.UUID
	ShipmentIDs    []kernel.UUID
	ReviewIDs      []kernel.UUID
	CreatedAt      time.Time
}

// TripDetails is a trip with its traveler resolved.
type TripDetails struct {
	TripView
	Traveler *UserSummary
}

// UserSummary is the public face of a user shown next to shipments and trips.
type UserSummary struct {
	ID            kernel.UUID
	Name          string
	Photo         string
	AverageRating int
}

// UserView is the account as its owner and staff see it. Secrets never leave
// the users table.
type UserView struct {
	ID            kernel.UUID
	Name          string
	Email         string
	Photo         string
	Role          string
	Verified      bool
	Earnings      float64
	AverageRating int
	CreatedAt     time.Time
}

type ReviewView struct {
	ID         kernel.UUID
	ReviewerID kernel.UUID
	RevieweeID kernel.UUID
	Subject    string
	SubjectID  kernel.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func toID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
