package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/pricing"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

// PreviewPrice computes a pricing quote without creating a booking:
// read-only, no lock, no write — it only needs the item's current
// pricePerDay.
func (svc *Service) PreviewPrice(ctx context.Context, itemID uuid.UUID, start, end time.Time) (pricing.Quote, error) {
	item, err := svc.store.GetItem(ctx, itemID)
	if err == store.ErrNotFound {
		return pricing.Quote{}, apperr.ErrItemNotFound
	}
	if err != nil {
		return pricing.Quote{}, apperr.Internal("loading item", err)
	}
	return pricing.Compute(item.PricePerDay, start, end)
}

// ListForUser lists bookings where userID participates in the given role.
func (svc *Service) ListForUser(ctx context.Context, userID uuid.UUID, role store.BookingRole) ([]models.Booking, error) {
	return svc.store.ListBookingsForUser(ctx, userID, role)
}
