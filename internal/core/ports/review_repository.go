package ports

import (
	"context"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/review"
)

type ReviewRepository interface {
	Add(ctx context.Context, aggregate *review.Review) error

	ExistsBySubjectAndReviewer(ctx context.Context, subjectID, reviewerID kernel.UUID) (bool, error)

	// RatingsOf returns every rating the user received.
	RatingsOf(ctx context.Context, revieweeID kernel.UUID) ([]int, error)
}
