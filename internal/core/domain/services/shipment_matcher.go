package services

import (
	"errors"
	"fmt"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/pkg/errs"
)

var (
	// ErrTripNotOwned is returned when a traveler tries to fill someone else's trip.
	ErrTripNotOwned = errs.NewAccessDeniedError("trip does not belong to the traveler")
	// ErrOwnShipment is returned when a traveler tries to carry their own shipment.
	ErrOwnShipment = errs.NewRuleViolationError("travelers cannot accept their own shipments")
)

// ShipmentMatcher puts a shipment on a trip. It runs every check before touching
// either aggregate, so a rejected match leaves both unchanged.
type ShipmentMatcher struct{}

func NewShipmentMatcher() ShipmentMatcher {
	return ShipmentMatcher{}
}

// Check reports why the traveler cannot put the shipment on the trip, or nil.
func (m ShipmentMatcher) Check(travelerID kernel.UUID, s *shipment.Shipment, t *trip.Trip) error {
	if err := errors.Join(travelerID.Validate(), s.Validate(), t.Validate()); err != nil {
		return err
	}
	if !t.IsOwnedBy(travelerID) {
		return ErrTripNotOwned
	}
	if s.IsOwnedBy(travelerID) {
		return ErrOwnShipment
	}
	if !s.Status().IsOpen() {
		return shipment.ErrShipmentIsNotOpen
	}
	if s.DesiredDeliveryDate().Before(t.DepartureDate()) {
		return errs.NewRuleViolationErrorWithCause(
			"desired delivery date is before the trip departure",
			fmt.Errorf("desired delivery %s, departure %s", s.DesiredDeliveryDate(), t.DepartureDate()),
		)
	}
	return t.EnsureCanCarry(s.TotalWeight())
}

// Match checks and applies the acceptance: the trip reserves the shipment weight and
// records it, the shipment is linked to the traveler and the trip.
func (m ShipmentMatcher) Match(travelerID kernel.UUID, s *shipment.Shipment, t *trip.Trip) error {
	if err := m.Check(travelerID, s, t); err != nil {
		return err
	}

	if err := t.Carry(s.ID(), s.ShopperID(), s.TotalWeight()); err != nil {
		return err
	}
	return s.Accept(travelerID, t.ID())
}
