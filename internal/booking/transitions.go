package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

type actorRole int

const (
	roleOwner actorRole = iota
	roleRenter
	roleEither
)

// transitionTable is the sole authority for transition legality.
var transitionTable = map[models.BookingStatus]map[models.BookingStatus]actorRole{
	models.BookingPending: {
		models.BookingApproved:  roleOwner,
		models.BookingRejected:  roleOwner,
		models.BookingCancelled: roleEither,
	},
	models.BookingApproved: {
		models.BookingPaymentPending: roleOwner,
		models.BookingCancelled:      roleEither,
	},
	models.BookingPaymentPending: {
		models.BookingCompleted: roleOwner,
		models.BookingCancelled: roleEither,
	},
}

const expiryThreshold = 48 * time.Hour

// Transition applies the state-machine transition table to a booking. It
// locks the booking row first, then the item row, in a stable order,
// before checking and writing the new status.
func (svc *Service) Transition(ctx context.Context, actorID, bookingID uuid.UUID, to models.BookingStatus) (*models.Booking, error) {
	var result *models.Booking
	err := svc.store.WithinTx(ctx, func(tx *gorm.DB) error {
		b, err := store.LockBookingForUpdate(tx, bookingID)
		if err == store.ErrNotFound {
			return apperr.ErrBookingNotFound
		}
		if err != nil {
			return apperr.Internal("loading booking", err)
		}

		// Lock the item too: transitions and creations on the same item
		// are mutually serialized.
		if _, err := store.LockItemForUpdate(tx, b.ItemID); err != nil && err != store.ErrNotFound {
			return apperr.Internal("locking item", err)
		}

		allowed, ok := transitionTable[b.Status]
		if !ok {
			return apperr.ErrInvalidTransition // from a terminal status
		}
		role, ok := allowed[to]
		if !ok {
			return apperr.ErrInvalidTransition
		}

		if err := authorize(role, actorID, b); err != nil {
			return err
		}

		if b.Status == models.BookingPending && to == models.BookingApproved {
			if svc.clock.Now().Sub(b.CreatedAt) >= expiryThreshold {
				return apperr.ErrBookingExpired
			}
		}

		b.Status = to
		if err := store.SaveBookingStatus(tx, b); err != nil {
			return apperr.Internal("saving booking status", err)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func authorize(role actorRole, actorID uuid.UUID, b *models.Booking) error {
	switch role {
	case roleOwner:
		if actorID != b.OwnerID {
			return apperr.ErrNotAuthorized
		}
	case roleRenter:
		if actorID != b.RenterID {
			return apperr.ErrNotAuthorized
		}
	case roleEither:
		if actorID != b.OwnerID && actorID != b.RenterID {
			return apperr.ErrNotAuthorized
		}
	}
	return nil
}
