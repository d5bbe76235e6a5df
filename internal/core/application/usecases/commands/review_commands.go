package commands

import (
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/guard"
)

var (
	ErrReviewShipmentCommandIsNotConstructed = errors.New(
		"ReviewShipmentCommand must be created via NewReviewShipmentCommand constructor",
	)
	ErrReviewTripCommandIsNotConstructed = errors.New(
		"ReviewTripCommand must be created via NewReviewTripCommand constructor",
	)
)

// reviewInput is what both review directions carry. Rating and comment are checked
// by the review aggregate.
type reviewInput struct {
	reviewID   kernel.UUID
	reviewerID kernel.UUID
	revieweeID kernel.UUID
	rating     int
	comment    string
}

func newReviewInput(reviewID, reviewerID, revieweeID kernel.UUID, rating int, comment string) (reviewInput, error) {
	if err := errors.Join(reviewID.Validate(), reviewerID.Validate(), revieweeID.Validate()); err != nil {
		return reviewInput{}, err
	}
	return reviewInput{
		reviewID:   reviewID,
		reviewerID: reviewerID,
		revieweeID: revieweeID,
		rating:     rating,
		comment:    comment,
	}, nil
}

func (r reviewInput) ReviewID() kernel.UUID { return r.reviewID }
func (r reviewInput) Rating() int           { return r.rating }
func (r reviewInput) Comment() string       { return r.comment }

// ReviewShipmentCommand is a traveler rating a shopper they delivered to.
type ReviewShipmentCommand struct { //nolint:recvcheck //using for validation
	reviewInput
	guard guard.ConstructorGuard
}

func NewReviewShipmentCommand(
	reviewID, travelerID, shopperID kernel.UUID,
	rating int,
	comment string,
) (ReviewShipmentCommand, error) {
	in, err := newReviewInput(reviewID, travelerID, shopperID, rating, comment)
	if err != nil {
		return ReviewShipmentCommand{}, err
	}
	return ReviewShipmentCommand{reviewInput: in, guard: guard.NewConstructorGuard()}, nil
}

func (c ReviewShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReviewShipmentCommandIsNotConstructed)
}

func (c ReviewShipmentCommand) TravelerID() kernel.UUID { return c.reviewerID }
func (c ReviewShipmentCommand) ShopperID() kernel.UUID  { return c.revieweeID }

// ReviewTripCommand is a shopper rating the traveler who carried their shipment.
type ReviewTripCommand struct { //nolint:recvcheck //using for validation
	reviewInput
	guard guard.ConstructorGuard
}

func NewReviewTripCommand(
	reviewID, shopperID, travelerID kernel.UUID,
	rating int,
	comment string,
) (ReviewTripCommand, error) {
	in, err := newReviewInput(reviewID, shopperID, travelerID, rating, comment)
	if err != nil {
		return ReviewTripCommand{}, err
	}
	return ReviewTripCommand{reviewInput: in, guard: guard.NewConstructorGuard()}, nil
}

func (c ReviewTripCommand) Validate() error {
	return c.guard.Validate(ErrReviewTripCommandIsNotConstructed)
}

func (c ReviewTripCommand) ShopperID() kernel.UUID  { return c.reviewerID }
func (c ReviewTripCommand) TravelerID() kernel.UUID { return c.revieweeID }
