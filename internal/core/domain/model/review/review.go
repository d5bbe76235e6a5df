// Package review implements the Review ledger: ratings exchanged between shoppers
// and travelers once a shipment or trip has progressed far enough.
package review

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	CommentMaxLength = 300
)

var (
	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")
	// ErrSelfReview is returned when the reviewer and the reviewee are the same user.
	ErrSelfReview = errs.NewRuleViolationError("users cannot review themselves")
	// ErrAlreadyReviewed is returned when the reviewer already reviewed the subject.
	ErrAlreadyReviewed = errs.NewRuleViolationError("subject has already been reviewed by this user")
)

// Subject tells what a review is about: a shopper reviews a trip (and thereby its
// traveler), a traveler reviews a shipment (and thereby its shopper).
type Subject string

const (
	SubjectTrip     Subject = "TRIP"
	SubjectShipment Subject = "SHIPMENT"
)

func (s Subject) Validate() error {
	if s != SubjectTrip && s != SubjectShipment {
		return errs.NewValueIsInvalidErrorWithCause("review subject", fmt.Errorf("%q is not a review subject", string(s)))
	}
	return nil
}

type Review struct {
	id            kernel.UUID
	reviewerID    kernel.UUID
	revieweeID    kernel.UUID
	subject       Subject
	subjectID     kernel.UUID
	rating        int
	comment       string
	createdAt     time.Time
	isConstructed bool
}

type Params struct {
	ID         kernel.UUID
	ReviewerID kernel.UUID
	RevieweeID kernel.UUID
	Subject    Subject
	SubjectID  kernel.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// NewReview validates and creates a review. Ratings outside [MinRating, MaxRating]
// are rejected, not clamped.
func NewReview(p Params) (*Review, error) {
	r := &Review{createdAt: p.CreatedAt.UTC(), isConstructed: true}

	if err := errors.Join(
		r.setID(p.ID),
		r.setParticipants(p.ReviewerID, p.RevieweeID),
		r.setSubject(p.Subject, p.SubjectID),
		r.setRating(p.Rating),
		r.setComment(p.Comment),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreReview rebuilds a persisted review; it applies the same checks as NewReview.
func RestoreReview(p Params) (*Review, error) {
	r, err := NewReview(p)
	if err != nil {
		return nil, err
	}
	r.createdAt = p.CreatedAt
	return r, nil
}

func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID         { return r.id }
func (r *Review) ReviewerID() kernel.UUID { return r.reviewerID }
func (r *Review) RevieweeID() kernel.UUID { return r.revieweeID }
func (r *Review) Subject() Subject        { return r.subject }
func (r *Review) SubjectID() kernel.UUID  { return r.subjectID }
func (r *Review) Rating() int             { return r.rating }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }

// AverageRating is the floor of the mean rating, 0 when there are no ratings.
func AverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	return sum / len(ratings)
}

func (r *Review) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Review) setParticipants(reviewerID, revieweeID kernel.UUID) error {
	if err := errors.Join(reviewerID.Validate(), revieweeID.Validate()); err != nil {
		return err
	}
	if reviewerID.IsEqual(revieweeID) {
		return ErrSelfReview
	}
	r.reviewerID = reviewerID
	r.revieweeID = revieweeID
	return nil
}

func (r *Review) setSubject(subject Subject, subjectID kernel.UUID) error {
	if err := errors.Join(subject.Validate(), subjectID.Validate()); err != nil {
		return err
	}
	r.subject = subject
	r.subjectID = subjectID
	return nil
}

func (r *Review) setRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	r.rating = rating
	return nil
}

func (r *Review) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return errs.NewValueIsRequiredError("comment")
	}
	if n := utf8.RuneCountInString(comment); n > CommentMaxLength {
		return errs.NewValueIsOutOfRangeError("comment length", n, 1, CommentMaxLength)
	}
	r.comment = comment
	return nil
}
