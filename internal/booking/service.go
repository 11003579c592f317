// Package booking implements the Booking Service: creation, the
// state-machine transition table, expiration gating, and the read-only
// "preview price" / "list my bookings" operations.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/pricing"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

type Service struct {
	store *store.Store
	clock clock.Clock
}

func NewService(s *store.Store, c clock.Clock) *Service {
	return &Service{store: s, clock: c}
}

// Create runs the full admission pipeline: load item, validate
// renter/date-range, price, persist under the item's exclusive lock,
// translate storage-layer overlap into apperr.ErrBookingOverlap.
func (svc *Service) Create(ctx context.Context, renterID, itemID uuid.UUID, start, end time.Time) (*models.Booking, error) {
	var result *models.Booking
	err := svc.store.WithinTx(ctx, func(tx *gorm.DB) error {
		item, err := store.LockItemForUpdate(tx, itemID)
		if err == store.ErrNotFound {
			return apperr.ErrItemNotFound
		}
		if err != nil {
			return apperr.Internal("loading item", err)
		}
		if !item.IsActive {
			return apperr.ErrItemInactive
		}
		if item.OwnerID == renterID {
			return apperr.ErrSelfBooking
		}

		now := svc.clock.Now()
		today := dateOnly(now)
		startDate := dateOnly(start)
		if startDate.Before(today) {
			return apperr.ErrInvalidDateRange
		}

		quote, err := pricing.Compute(item.PricePerDay, start, end)
		if err != nil {
			return err
		}

		b := &models.Booking{
			ItemID:         itemID,
			RenterID:       renterID,
			OwnerID:        item.OwnerID,
			StartDate:      dateOnly(start),
			EndDate:        dateOnly(end),
			TotalDays:      quote.TotalDays,
			BaseTotal:      quote.BaseTotal,
			DiscountRate:   quote.DiscountRate,
			DiscountAmount: quote.DiscountAmount,
			FinalTotal:     quote.FinalTotal,
			Deposit:        item.DepositAmount,
			Status:         models.BookingPending,
			CreatedAt:      now,
		}

		if err := store.CreateBookingNoOverlap(tx, b); err != nil {
			if err == store.ErrOverlap {
				return apperr.ErrBookingOverlap
			}
			return apperr.Internal("creating booking", err)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
