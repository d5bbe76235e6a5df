package trip

import (
	"errors"
	"fmt"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip was not created through NewTrip or RestoreTrip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")
	// ErrTripIsLocked is returned when editing a trip that already started or ended.
	ErrTripIsLocked = errs.NewRuleViolationError("trip can no longer be updated")
	// ErrTripNotDeletable is returned when deleting a trip that is on travel or completed.
	ErrTripNotDeletable = errs.NewRuleViolationError("trip cannot be deleted once on travel or completed")
	// ErrTripNotReviewable is returned when the trip has not started yet.
	ErrTripNotReviewable = errs.NewRuleViolationError("trip cannot be reviewed before it started")
	// ErrShopperNotOnTrip is returned when a shopper reviews a trip that carries none of their shipments.
	ErrShopperNotOnTrip = errs.NewAccessDeniedError("shopper has no shipment on this trip")
)

// Trip is the aggregate root of a traveler's journey and the luggage space they offer.
type Trip struct {
	id            kernel.UUID
	travelerID    kernel.UUID
	route         kernel.Route
	departureDate time.Time
	capacity      Capacity
	status        Status
	history       []Status
	shopperIDs    []kernel.UUID
	shipmentIDs   []kernel.UUID
	reviewIDs     []kernel.UUID
	createdAt     time.Time
	version       int
	isConstructed bool
}

// NewTrip creates a trip UnderReview with nothing consumed yet. The departure
// date must be strictly after now.
func NewTrip(
	id kernel.UUID,
	travelerID kernel.UUID,
	route kernel.Route,
	departureDate time.Time,
	availableSpace float64,
	now time.Time,
) (*Trip, error) {
	t := &Trip{
		status:        UnderReview,
		history:       []Status{UnderReview},
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	capacity, errCapacity := NewCapacity(availableSpace)
	if err := errors.Join(
		t.setID(id),
		t.setTravelerID(travelerID),
		t.setRoute(route),
		t.setDepartureDate(departureDate, now),
		errCapacity,
	); err != nil {
		return nil, err
	}
	t.capacity = capacity

	return t, nil
}

type RestoreParams struct {
	ID             kernel.UUID
	TravelerID     kernel.UUID
	Route          kernel.Route
	DepartureDate  time.Time
	AvailableSpace float64
	ConsumedSpace  float64
	History        []Status
	ShopperIDs     []kernel.UUID
	ShipmentIDs    []kernel.UUID
	ReviewIDs      []kernel.UUID
	CreatedAt      time.Time
	Version        int
}

func RestoreTrip(p RestoreParams) (*Trip, error) {
	if len(p.History) == 0 {
		return nil, errs.NewValueIsRequiredError("trip status history")
	}
	for _, st := range p.History {
		if err := st.Validate(); err != nil {
			return nil, err
		}
	}

	t := &Trip{
		departureDate: p.DepartureDate,
		history:       append([]Status(nil), p.History...),
		status:        p.History[len(p.History)-1],
		shopperIDs:    append([]kernel.UUID(nil), p.ShopperIDs...),
		shipmentIDs:   append([]kernel.UUID(nil), p.ShipmentIDs...),
		reviewIDs:     append([]kernel.UUID(nil), p.ReviewIDs...),
		createdAt:     p.CreatedAt,
		version:       p.Version,
		isConstructed: true,
	}
	capacity, errCapacity := RestoreCapacity(p.AvailableSpace, p.ConsumedSpace)
	if err := errors.Join(
		t.setID(p.ID),
		t.setTravelerID(p.TravelerID),
		t.setRoute(p.Route),
		errCapacity,
	); err != nil {
		return nil, err
	}
	t.capacity = capacity

	return t, nil
}

func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

func (t *Trip) ID() kernel.UUID          { return t.id }
func (t *Trip) TravelerID() kernel.UUID  { return t.travelerID }
func (t *Trip) Route() kernel.Route      { return t.route }
func (t *Trip) DepartureDate() time.Time { return t.departureDate }
func (t *Trip) Capacity() Capacity       { return t.capacity }
func (t *Trip) Status() Status           { return t.status }
func (t *Trip) CreatedAt() time.Time     { return t.createdAt }
func (t *Trip) Version() int             { return t.version }

// IncrementVersion records that a versioned write of the trip succeeded.
func (t *Trip) IncrementVersion() { t.version++ }

func (t *Trip) History() []Status {
	return append([]Status(nil), t.history...)
}

func (t *Trip) ShopperIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), t.shopperIDs...)
}

func (t *Trip) ShipmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), t.shipmentIDs...)
}

func (t *Trip) ReviewIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), t.reviewIDs...)
}

func (t *Trip) IsOwnedBy(travelerID kernel.UUID) bool {
	return t.travelerID.IsEqual(travelerID)
}

func (t *Trip) HasShopper(shopperID kernel.UUID) bool {
	return kernel.ContainsUUID(t.shopperIDs, shopperID)
}

// Patch lists the fields a traveler may change. Nil fields are left untouched.
type Patch struct {
	DepartureDate  *time.Time
	AvailableSpace *float64
}

// Update applies the patch while the trip has not started. The departure date is
// re-checked against now even when it is not part of the patch.
func (t *Trip) Update(patch Patch, now time.Time) error {
	if t.status.IsLocked() {
		return ErrTripIsLocked
	}

	next := *t
	date := t.departureDate
	if patch.DepartureDate != nil {
		date = *patch.DepartureDate
	}
	errList := []error{next.setDepartureDate(date, now)}
	if patch.AvailableSpace != nil {
		capacity, err := t.capacity.Resize(*patch.AvailableSpace)
		errList = append(errList, err)
		next.capacity = capacity
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	*t = next
	return nil
}

func (t *Trip) EnsureDeletable() error {
	if t.status == OnTravel || t.status == Completed {
		return ErrTripNotDeletable
	}
	return nil
}

// EnsureCanCarry checks, without side effects, that the trip can take a shipment of
// the given weight.
func (t *Trip) EnsureCanCarry(weight float64) error {
	if !t.status.CanTransitionTo(OnTravel) {
		return errs.NewRuleViolationErrorWithCause(
			"trip cannot take shipments",
			fmt.Errorf("status is %s", t.status),
		)
	}
	if !t.capacity.CanFit(weight) {
		return errs.NewRuleViolationErrorWithCause(
			ErrNotEnoughSpace.Rule,
			fmt.Errorf("%v kg requested, %v kg available", weight, t.capacity.Available()),
		)
	}
	return nil
}

// Carry reserves space for an accepted shipment and records it together with its
// shopper. The trip is put OnTravel.
func (t *Trip) Carry(shipmentID, shopperID kernel.UUID, weight float64) error {
	if err := errors.Join(shipmentID.Validate(), shopperID.Validate()); err != nil {
		return err
	}
	if kernel.ContainsUUID(t.shipmentIDs, shipmentID) {
		return errs.NewRuleViolationError("shipment is already carried by this trip")
	}
	if err := t.EnsureCanCarry(weight); err != nil {
		return err
	}

	capacity, err := t.capacity.Reserve(weight)
	if err != nil {
		return err
	}
	if err = t.transitionTo(OnTravel); err != nil {
		return err
	}

	t.capacity = capacity
	t.shipmentIDs = append(t.shipmentIDs, shipmentID)
	if !t.HasShopper(shopperID) {
		t.shopperIDs = append(t.shopperIDs, shopperID)
	}
	return nil
}

// Publish is the admin approval of a trip under review.
func (t *Trip) Publish() error {
	if t.status != UnderReview {
		return errs.NewRuleViolationErrorWithCause("trip cannot be published", fmt.Errorf("status is %s", t.status))
	}
	return t.transitionTo(Publishing)
}

// Complete ends a trip on travel.
func (t *Trip) Complete() error {
	if t.status != OnTravel {
		return errs.NewRuleViolationErrorWithCause("trip cannot be completed", fmt.Errorf("status is %s", t.status))
	}
	return t.transitionTo(Completed)
}

// Cancel withdraws a trip that has not started.
func (t *Trip) Cancel() error {
	return t.transitionTo(Cancelled)
}

// EnsureReviewableBy checks that the shopper travelled with this trip and that it started.
func (t *Trip) EnsureReviewableBy(shopperID kernel.UUID) error {
	if !t.HasShopper(shopperID) {
		return ErrShopperNotOnTrip
	}
	if !t.status.IsReviewable() {
		return ErrTripNotReviewable
	}
	return nil
}

func (t *Trip) AttachReview(reviewID kernel.UUID) error {
	if err := reviewID.Validate(); err != nil {
		return err
	}
	if kernel.ContainsUUID(t.reviewIDs, reviewID) {
		return nil
	}
	t.reviewIDs = append(t.reviewIDs, reviewID)
	return nil
}

func (t *Trip) transitionTo(next Status) error {
	status, err := t.status.TransitionTo(next)
	if err != nil {
		return err
	}
	if status != t.status {
		t.history = append(t.history, status)
	}
	t.status = status
	return nil
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setTravelerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.travelerID = id
	return nil
}

func (t *Trip) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	t.route = route
	return nil
}

func (t *Trip) setDepartureDate(date, now time.Time) error {
	if !date.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"departure date",
			fmt.Errorf("%s is not in the future", date.Format(time.RFC3339)),
		)
	}
	t.departureDate = date.UTC()
	return nil
}
