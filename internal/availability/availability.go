// Package availability implements the Availability Projector: a pure,
// read-only derivation of blocked date ranges from active bookings. It
// takes no write lock and never mutates state.
package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

// Range is a client-renderable calendar block.
type Range struct {
	StartDate time.Time            `json:"start_date"`
	EndDate   time.Time            `json:"end_date"`
	Status    models.BookingStatus `json:"status"`
}

type Projector struct {
	store *store.Store
}

func NewProjector(s *store.Store) *Projector {
	return &Projector{store: s}
}

// Project returns the ordered set of active bookings for itemID
// intersecting [from, to] (either may be the zero time.Time for an
// unbounded side).
func (p *Projector) Project(ctx context.Context, itemID uuid.UUID, from, to time.Time) ([]Range, error) {
	bookings, err := p.store.ActiveBookingsForItem(ctx, itemID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]Range, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Range{StartDate: b.StartDate, EndDate: b.EndDate, Status: b.Status})
	}
	return out, nil
}
