package commands

import (
	"context"
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/review"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// ReviewShipmentCommandHandler records a traveler's review of a shopper.
//
// The traveler reviews the oldest delivered, not yet reviewed shipment of that
// shopper they carried. The shopper's average rating is recomputed in the same
// transaction.
type ReviewShipmentCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewReviewShipmentCommandHandler(uowFactory UoWFactory, clock Clock) ReviewShipmentCommandHandler {
	return ReviewShipmentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReviewShipmentCommandHandler) Handle(ctx context.Context, cmd ReviewShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	shipments := uow.ShipmentRepository()
	reviews := uow.ReviewRepository()

	shopper, err := users.GetForUpdate(ctx, cmd.ShopperID())
	if err != nil {
		return err
	}

	candidates, err := shipments.FindByShopperAndTraveler(ctx, cmd.ShopperID(), cmd.TravelerID())
	if err != nil {
		return err
	}
	target, err := pickReviewableShipment(candidates, cmd.ShopperID())
	if err != nil {
		return err
	}

	r, err := review.NewReview(review.Params{
		ID:         cmd.ReviewID(),
		ReviewerID: cmd.TravelerID(),
		RevieweeID: cmd.ShopperID(),
		Subject:    review.SubjectShipment,
		SubjectID:  target.ID(),
		Rating:     cmd.Rating(),
		Comment:    cmd.Comment(),
		CreatedAt:  h.clock.now(),
	})
	if err != nil {
		return err
	}
	if err = target.AttachReview(r.ID()); err != nil {
		return err
	}

	if err = reviews.Add(ctx, r); err != nil {
		return err
	}
	if err = shipments.Update(ctx, target); err != nil {
		return err
	}
	if err = refreshAverageRating(ctx, reviews, shopper); err != nil {
		return err
	}
	if err = users.Update(ctx, shopper); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// pickReviewableShipment returns the first reviewable shipment. If there is none it
// explains why: already reviewed wins over not delivered.
func pickReviewableShipment(candidates []*shipment.Shipment, shopperID kernel.UUID) (*shipment.Shipment, error) {
	if len(candidates) == 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause(
			"shipment", shopperID.String(), errors.New("no shipment of this shopper was carried by the traveler"),
		)
	}

	reason := shipment.ErrShipmentNotDelivered
	for _, s := range candidates {
		err := s.EnsureReviewable()
		if err == nil {
			return s, nil
		}
		if errors.Is(err, shipment.ErrShipmentAlreadyReviewed) {
			reason = shipment.ErrShipmentAlreadyReviewed
		}
	}
	return nil, reason
}

// ReviewTripCommandHandler records a shopper's review of a traveler.
//
// The shopper reviews the oldest trip of that traveler that carried one of their
// shipments, has started, and was not reviewed by them yet. The traveler's average
// rating is recomputed in the same transaction.
type ReviewTripCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewReviewTripCommandHandler(uowFactory UoWFactory, clock Clock) ReviewTripCommandHandler {
	return ReviewTripCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReviewTripCommandHandler) Handle(ctx context.Context, cmd ReviewTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	trips := uow.TripRepository()
	reviews := uow.ReviewRepository()

	traveler, err := users.GetForUpdate(ctx, cmd.TravelerID())
	if err != nil {
		return err
	}

	candidates, err := trips.FindByTravelerAndShopper(ctx, cmd.TravelerID(), cmd.ShopperID())
	if err != nil {
		return err
	}
	target, err := pickReviewableTrip(ctx, reviews, candidates, cmd.ShopperID(), cmd.TravelerID())
	if err != nil {
		return err
	}

	r, err := review.NewReview(review.Params{
		ID:         cmd.ReviewID(),
		ReviewerID: cmd.ShopperID(),
		RevieweeID: cmd.TravelerID(),
		Subject:    review.SubjectTrip,
		SubjectID:  target.ID(),
		Rating:     cmd.Rating(),
		Comment:    cmd.Comment(),
		CreatedAt:  h.clock.now(),
	})
	if err != nil {
		return err
	}
	if err = target.AttachReview(r.ID()); err != nil {
		return err
	}

	if err = reviews.Add(ctx, r); err != nil {
		return err
	}
	if err = trips.Update(ctx, target); err != nil {
		return err
	}
	if err = refreshAverageRating(ctx, reviews, traveler); err != nil {
		return err
	}
	if err = users.Update(ctx, traveler); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func pickReviewableTrip(
	ctx context.Context,
	reviews ports.ReviewRepository,
	candidates []*trip.Trip,
	shopperID, travelerID kernel.UUID,
) (*trip.Trip, error) {
	if len(candidates) == 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause(
			"trip", travelerID.String(), errors.New("no trip of this traveler carried the shopper"),
		)
	}

	reason := error(trip.ErrTripNotReviewable)
	for _, t := range candidates {
		if err := t.EnsureReviewableBy(shopperID); err != nil {
			continue
		}
		reviewed, err := reviews.ExistsBySubjectAndReviewer(ctx, t.ID(), shopperID)
		if err != nil {
			return nil, err
		}
		if !reviewed {
			return t, nil
		}
		reason = review.ErrAlreadyReviewed
	}
	return nil, reason
}

// refreshAverageRating recomputes the reviewee's average from every review they
// received, the one just added included.
func refreshAverageRating(ctx context.Context, reviews ports.ReviewRepository, reviewee *user.User) error {
	ratings, err := reviews.RatingsOf(ctx, reviewee.ID())
	if err != nil {
		return err
	}
	return reviewee.SetAverageRating(review.AverageRating(ratings))
}
