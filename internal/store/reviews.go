package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/money"
	"github.com/rentalmarket/core/models"
)

// CreateReviewAndRecomputeRating inserts the review and, in the same
// transaction, recomputes reviewedUserID's RatingAverage/ReviewCount from
// the full set of reviews for that user. Uses query-aggregation
// (AVG/COUNT) rather than an incremental update, so the denormalized
// fields can never drift from the underlying review rows. Locks the
// reviewed user's row before recomputing so two reviews landing for the
// same user at once serialize instead of racing on the update.
func CreateReviewAndRecomputeRating(tx *gorm.DB, r *models.Review) error {
	var existing models.Review
	err := tx.Where("booking_id = ? AND direction = ?", r.BookingID, r.Direction).Take(&existing).Error
	if err == nil {
		return ErrDuplicateReview
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := tx.Create(r).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}

	var reviewedUser models.User
	if err := tx.Clauses(lockingForUpdate()).First(&reviewedUser, "id = ?", r.ReviewedUserID).Error; err != nil {
		return err
	}

	var agg struct {
		Avg   decimal.Decimal
		Count int
	}
	err = tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewed_user_id = ?", r.ReviewedUserID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	avg := money.RoundHalfUp(agg.Avg)
	return tx.Model(&models.User{}).
		Where("id = ?", r.ReviewedUserID).
		Updates(map[string]interface{}{
			"rating_average": avg,
			"review_count":   agg.Count,
		}).Error
}

func (s *Store) ReviewExists(ctx context.Context, bookingID uuid.UUID, direction models.ReviewDirection) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Where("booking_id = ? AND direction = ?", bookingID, direction).
		Count(&count).Error
	return count > 0, err
}
