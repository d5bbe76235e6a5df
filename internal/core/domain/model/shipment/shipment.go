package shipment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
)

const (
	// FeeRate is the platform commission charged on top of the reward.
	FeeRate = 0.2
	// MaxTotalPrice caps the summed product prices of a shipment, in USD.
	MaxTotalPrice = 1000.0
	// MaxOpenPerShopper is the number of open shipments a shopper may have at once.
	MaxOpenPerShopper = 3
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
	// ErrShipmentIsNotOpen is returned when a shipment has already been accepted, delivered or canceled.
	ErrShipmentIsNotOpen = errs.NewRuleViolationError("shipment is no longer open")
	// ErrShipmentAlreadyReviewed is returned when the traveler already reviewed the shipment.
	ErrShipmentAlreadyReviewed = errs.NewRuleViolationError("shipment has already been reviewed")
	// ErrShipmentNotDelivered is returned when reviewing a shipment the shopper has not received.
	ErrShipmentNotDelivered = errs.NewRuleViolationError("shipment has not been delivered to the shopper")
)

// Shipment is the aggregate root of a shopper's purchase request. A traveler accepts
// it for one of their trips and carries the products to the shopper.
type Shipment struct {
	id                  kernel.UUID
	shopperID           kernel.UUID
	products            []Product
	route               kernel.Route
	desiredDeliveryDate time.Time
	rewardPrice         float64
	fees                float64
	status              Status
	history             []Status
	tripID              *kernel.UUID
	travelerID          *kernel.UUID
	reviewID            *kernel.UUID
	createdAt           time.Time
	version             int
	isConstructed       bool
}

// NewShipment creates a Pending shipment. All create-time invariants are checked
// against now: at least one product, a total price within MaxTotalPrice, a positive
// reward and a delivery date strictly in the future.
func NewShipment(
	id kernel.UUID,
	shopperID kernel.UUID,
	products []Product,
	route kernel.Route,
	desiredDeliveryDate time.Time,
	rewardPrice float64,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        Pending,
		history:       []Status{Pending},
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setShopperID(shopperID),
		s.setProducts(products),
		s.setRoute(route),
		s.setDesiredDeliveryDate(desiredDeliveryDate, now),
		s.setRewardPrice(rewardPrice),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreParams carries a persisted shipment back into the domain.
type RestoreParams struct {
	ID                  kernel.UUID
	ShopperID           kernel.UUID
	Products            []Product
	Route               kernel.Route
	DesiredDeliveryDate time.Time
	RewardPrice         float64
	History             []Status
	TripID              *kernel.UUID
	TravelerID          *kernel.UUID
	ReviewID            *kernel.UUID
	CreatedAt           time.Time
	Version             int
}

// RestoreShipment rebuilds a shipment from storage. Time-dependent rules are not
// re-checked; the current status is the last entry of the history.
func RestoreShipment(p RestoreParams) (*Shipment, error) {
	if len(p.History) == 0 {
		return nil, errs.NewValueIsRequiredError("shipment status history")
	}
	for _, st := range p.History {
		if err := st.Validate(); err != nil {
			return nil, err
		}
	}

	s := &Shipment{
		history:       append([]Status(nil), p.History...),
		status:        p.History[len(p.History)-1],
		tripID:        p.TripID,
		travelerID:    p.TravelerID,
		reviewID:      p.ReviewID,
		createdAt:     p.CreatedAt,
		version:       p.Version,
		isConstructed: true,
	}
	if err := errors.Join(
		s.setID(p.ID),
		s.setShopperID(p.ShopperID),
		s.setProducts(p.Products),
		s.setRoute(p.Route),
		s.setRewardPrice(p.RewardPrice),
	); err != nil {
		return nil, err
	}
	s.desiredDeliveryDate = p.DesiredDeliveryDate

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID                { return s.id }
func (s *Shipment) ShopperID() kernel.UUID         { return s.shopperID }
func (s *Shipment) Route() kernel.Route            { return s.route }
func (s *Shipment) DesiredDeliveryDate() time.Time { return s.desiredDeliveryDate }
func (s *Shipment) RewardPrice() float64           { return s.rewardPrice }
func (s *Shipment) Fees() float64                  { return s.fees }
func (s *Shipment) Status() Status                 { return s.status }
func (s *Shipment) TripID() *kernel.UUID           { return s.tripID }
func (s *Shipment) TravelerID() *kernel.UUID       { return s.travelerID }
func (s *Shipment) ReviewID() *kernel.UUID         { return s.reviewID }
func (s *Shipment) CreatedAt() time.Time           { return s.createdAt }

// Version is the optimistic-locking counter maintained by the repository.
func (s *Shipment) Version() int { return s.version }

// IncrementVersion records that a versioned write of the shipment succeeded.
func (s *Shipment) IncrementVersion() { s.version++ }

func (s *Shipment) Products() []Product {
	return append([]Product(nil), s.products...)
}

// History returns every status the shipment went through, oldest first.
func (s *Shipment) History() []Status {
	return append([]Status(nil), s.history...)
}

func (s *Shipment) IsOwnedBy(shopperID kernel.UUID) bool {
	return s.shopperID.IsEqual(shopperID)
}

// TotalWeight is the capacity, in kilograms, the shipment takes on a trip.
func (s *Shipment) TotalWeight() float64 {
	var total float64
	for _, p := range s.products {
		total += p.weight
	}
	return total
}

func (s *Shipment) TotalPrice() float64 {
	var total float64
	for _, p := range s.products {
		total += p.price
	}
	return total
}

// IsExpired reports whether an open shipment's desired delivery date has passed.
func (s *Shipment) IsExpired(now time.Time) bool {
	return s.status.IsOpen() && !s.desiredDeliveryDate.After(now)
}

// Patch lists the fields a shopper may change. Nil fields are left untouched.
type Patch struct {
	DesiredDeliveryDate *time.Time
	RewardPrice         *float64
	Route               *kernel.Route
	Products            []Product
}

// Update applies the patch to an open shipment and re-checks every create-time
// invariant. On error the shipment is left unchanged.
func (s *Shipment) Update(patch Patch, now time.Time) error {
	if !s.status.IsOpen() {
		return ErrShipmentIsNotOpen
	}

	next := *s
	var errList []error
	if patch.Products != nil {
		errList = append(errList, next.setProducts(patch.Products))
	}
	if patch.Route != nil {
		errList = append(errList, next.setRoute(*patch.Route))
	}
	if patch.RewardPrice != nil {
		errList = append(errList, next.setRewardPrice(*patch.RewardPrice))
	}
	date := s.desiredDeliveryDate
	if patch.DesiredDeliveryDate != nil {
		date = *patch.DesiredDeliveryDate
	}
	errList = append(errList, next.setDesiredDeliveryDate(date, now))
	if err := errors.Join(errList...); err != nil {
		return err
	}

	*s = next
	return nil
}

// EnsureDeletable returns ErrShipmentIsNotOpen once a traveler is involved.
func (s *Shipment) EnsureDeletable() error {
	if !s.status.IsOpen() {
		return ErrShipmentIsNotOpen
	}
	return nil
}

// Accept links the shipment to the traveler's trip.
func (s *Shipment) Accept(travelerID, tripID kernel.UUID) error {
	if err := errors.Join(travelerID.Validate(), tripID.Validate()); err != nil {
		return err
	}
	if !s.status.IsOpen() {
		return ErrShipmentIsNotOpen
	}
	if err := s.transitionTo(AcceptedByTraveler); err != nil {
		return err
	}
	s.travelerID = &travelerID
	s.tripID = &tripID
	return nil
}

// Moderate advances an unaccepted shipment one moderation step:
// Pending to UnderReview, UnderReview to Published.
func (s *Shipment) Moderate() error {
	switch s.status { //nolint:exhaustive // any other status cannot be moderated
	case Pending:
		return s.transitionTo(UnderReview)
	case UnderReview:
		return s.transitionTo(Published)
	default:
		return errs.NewRuleViolationErrorWithCause(
			"shipment cannot be moderated",
			fmt.Errorf("status is %s", s.status),
		)
	}
}

// AdvanceProgress records the traveler's progress: AcceptedByTraveler to
// BookingCompleted, BookingCompleted to DeliveredToTraveler.
func (s *Shipment) AdvanceProgress() error {
	switch s.status { //nolint:exhaustive // progress is only reported by the traveler after acceptance
	case AcceptedByTraveler:
		return s.transitionTo(BookingCompleted)
	case BookingCompleted:
		return s.transitionTo(DeliveredToTraveler)
	default:
		return errs.NewRuleViolationErrorWithCause(
			"shipment progress cannot be advanced",
			fmt.Errorf("status is %s", s.status),
		)
	}
}

// ConfirmDelivery is called by the shopper once the products were handed over.
func (s *Shipment) ConfirmDelivery() error {
	return s.transitionTo(DeliveredToShopper)
}

// Cancel closes an open shipment, used when its delivery date expired.
func (s *Shipment) Cancel() error {
	if !s.status.IsOpen() {
		return ErrShipmentIsNotOpen
	}
	return s.transitionTo(Canceled)
}

// EnsureReviewable checks that the traveler may review the shopper for this shipment.
func (s *Shipment) EnsureReviewable() error {
	if s.reviewID != nil {
		return ErrShipmentAlreadyReviewed
	}
	if s.status != DeliveredToShopper {
		return ErrShipmentNotDelivered
	}
	return nil
}

// AttachReview links the traveler's review of the shopper.
func (s *Shipment) AttachReview(reviewID kernel.UUID) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}
	if err := s.EnsureReviewable(); err != nil {
		return err
	}
	s.reviewID = &reviewID
	return nil
}

func (s *Shipment) transitionTo(next Status) error {
	status, err := s.status.TransitionTo(next)
	if err != nil {
		return err
	}
	s.status = status
	s.history = append(s.history, status)
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setShopperID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.shopperID = id
	return nil
}

func (s *Shipment) setProducts(products []Product) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	var total float64
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
		total += p.price
	}
	if total > MaxTotalPrice {
		return errs.NewValueIsOutOfRangeError("total products price", total, 0, MaxTotalPrice)
	}

	s.products = append([]Product(nil), products...)
	return nil
}

func (s *Shipment) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	s.route = route
	return nil
}

func (s *Shipment) setDesiredDeliveryDate(date, now time.Time) error {
	if !date.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"desired delivery date",
			fmt.Errorf("%s is not in the future", date.Format(time.RFC3339)),
		)
	}
	s.desiredDeliveryDate = date.UTC()
	return nil
}

func (s *Shipment) setRewardPrice(reward float64) error {
	if reward <= 0 || math.IsNaN(reward) || math.IsInf(reward, 0) {
		return errs.NewValueIsInvalidErrorWithCause("reward price", fmt.Errorf("%v is not greater than 0", reward))
	}
	s.rewardPrice = reward
	s.fees = CalculateFees(reward)
	return nil
}

// CalculateFees returns FeeRate of the reward rounded to cents.
func CalculateFees(reward float64) float64 {
	return math.Round(reward*FeeRate*100) / 100
}
