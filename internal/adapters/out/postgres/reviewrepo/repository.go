// Package reviewrepo persists reviews. A unique index on (subject_id, reviewer_id)
// backs the one-review-per-direction rule.
package reviewrepo

import (
	"context"
	"errors"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/review"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_subject_reviewer,priority:2"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject    string    `gorm:"type:varchar(16);not null"`
	SubjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_subject_reviewer,priority:1"`
	Rating     int       `gorm:"type:smallint;not null"`
	Comment    string    `gorm:"type:varchar(300);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

// GormReviewRepository implements ports.ReviewRepository using GORM.
type GormReviewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReviewRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewRepository {
	return &GormReviewRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the review. Losing the race against a concurrent review of the same
// subject by the same reviewer yields review.ErrAlreadyReviewed; the connection
// must translate driver errors (gorm.Config.TranslateError).
func (r *GormReviewRepository) Add(ctx context.Context, aggregate *review.Review) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := ReviewDTO{
		ID:         aggregate.ID().Bytes(),
		ReviewerID: aggregate.ReviewerID().Bytes(),
		RevieweeID: aggregate.RevieweeID().Bytes(),
		Subject:    string(aggregate.Subject()),
		SubjectID:  aggregate.SubjectID().Bytes(),
		Rating:     aggregate.Rating(),
		Comment:    aggregate.Comment(),
		CreatedAt:  aggregate.CreatedAt().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review.ErrAlreadyReviewed
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormReviewRepository) ExistsBySubjectAndReviewer(ctx context.Context, subjectID, reviewerID kernel.UUID) (bool, error) {
	if err := errors.Join(subjectID.Validate(), reviewerID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Where("subject_id = ? AND reviewer_id = ?", subjectID.Bytes(), reviewerID.Bytes()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormReviewRepository) RatingsOf(ctx context.Context, revieweeID kernel.UUID) ([]int, error) {
	if err := revieweeID.Validate(); err != nil {
		return nil, err
	}

	ratings := make([]int, 0)
	err := r.db.WithContext(ctx).
		Model(&ReviewDTO{}).
		Where("reviewee_id = ?", revieweeID.Bytes()).
		Order("created_at").
		Pluck("rating", &ratings).Error
	return ratings, err
}
