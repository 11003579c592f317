// Package review implements the Review Service: eligibility validation
// and atomic denormalized rating maintenance.
package review

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

const minCommentLength = 10

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Create validates eligibility, determines direction from the reviewer's
// relationship to the booking, and inserts the review with its rating
// recompute in one transaction.
func (svc *Service) Create(ctx context.Context, reviewerID, bookingID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.ErrInvalidRating
	}
	if len(strings.TrimSpace(comment)) < minCommentLength {
		return nil, apperr.ErrCommentTooShort
	}

	var result *models.Review
	err := svc.store.WithinTx(ctx, func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, "id = ?", bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.ErrBookingNotFound
			}
			return apperr.Internal("loading booking", err)
		}
		if b.Status != models.BookingCompleted {
			return apperr.ErrReviewNotEligible
		}

		direction, reviewedUser, err := directionFor(reviewerID, &b)
		if err != nil {
			return err
		}

		r := &models.Review{
			BookingID:      bookingID,
			ReviewerID:     reviewerID,
			ReviewedUserID: reviewedUser,
			Direction:      direction,
			Rating:         rating,
			Comment:        comment,
		}

		if err := store.CreateReviewAndRecomputeRating(tx, r); err != nil {
			if err == store.ErrDuplicateReview {
				return apperr.ErrDuplicateReview
			}
			return apperr.Internal("creating review", err)
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// directionFor derives the review's direction from the reviewer's
// relationship to the booking: renter reviewing owner, or owner
// reviewing renter.
func directionFor(reviewerID uuid.UUID, b *models.Booking) (models.ReviewDirection, uuid.UUID, error) {
	switch reviewerID {
	case b.RenterID:
		return models.DirectionRenterToOwner, b.OwnerID, nil
	case b.OwnerID:
		return models.DirectionOwnerToRenter, b.RenterID, nil
	default:
		return "", uuid.Nil, apperr.ErrNotAuthorized
	}
}
