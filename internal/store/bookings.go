package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/models"
)

// CreateBookingNoOverlap must run with tx already holding the item's
// exclusive row lock (see LockItemForUpdate). It scans for any active
// booking on the same item whose range intersects [b.StartDate, b.EndDate]
// (a1 <= b2 AND b1 <= a2, both inclusive) and refuses to insert if one
// exists. This is the non-negotiable storage-layer guarantee — it holds
// even if the caller's own validation is buggy, because the scan and the
// insert share the same transaction and
// the same row lock.
func CreateBookingNoOverlap(tx *gorm.DB, b *models.Booking) error {
	var existing models.Booking
	err := tx.Model(&models.Booking{}).
		Where("item_id = ? AND status IN ?", b.ItemID, activeStatusStrings()).
		Where("start_date <= ? AND end_date >= ?", b.EndDate, b.StartDate).
		Take(&existing).Error

	if err == nil {
		return ErrOverlap
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return tx.Create(b).Error
}

func activeStatusStrings() []string {
	out := make([]string, 0, len(models.ActiveStatuses))
	for _, s := range models.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// LockBookingForUpdate loads a booking with an exclusive row lock. Booking
// transitions take this lock (before the item's lock, in the same
// transaction) so that two concurrent transition attempts on the same
// booking cannot interleave.
func LockBookingForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := tx.Clauses(lockingForUpdate()).First(&b, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func SaveBookingStatus(tx *gorm.DB, b *models.Booking) error {
	return tx.Model(&models.Booking{}).Where("id = ?", b.ID).Update("status", b.Status).Error
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BookingRole selects which side of a booking a user must be on to
// match a "list my bookings" query.
type BookingRole string

const (
	RoleRenter BookingRole = "renter"
	RoleOwner  BookingRole = "owner"
	RoleBoth   BookingRole = "both"
)

func (s *Store) ListBookingsForUser(ctx context.Context, userID uuid.UUID, role BookingRole) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	switch role {
	case RoleRenter:
		q = q.Where("renter_id = ?", userID)
	case RoleOwner:
		q = q.Where("owner_id = ?", userID)
	default:
		q = q.Where("renter_id = ? OR owner_id = ?", userID, userID)
	}
	var out []models.Booking
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveBookingsForItem returns active bookings for itemID intersecting
// [from, to] (zero time.Time on either bound means unbounded), ordered by
// start date — the Availability Projector's read path.
func (s *Store) ActiveBookingsForItem(ctx context.Context, itemID uuid.UUID, from, to time.Time) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("item_id = ? AND status IN ?", itemID, activeStatusStrings())
	if !from.IsZero() {
		q = q.Where("end_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_date <= ?", to)
	}
	var out []models.Booking
	if err := q.Order("start_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ExpireCandidates selects PENDING bookings older than the threshold,
// attempting a non-blocking lock on each booking row and on its item row
// (FOR UPDATE over the join locks both), and skipping any whose booking or
// per-item primitive is held by another transaction. Rows this call cannot lock
// are simply absent from the returned slice — SKIP LOCKED silently
// excludes them, which is the intended behavior: a booking actively
// being transitioned elsewhere is left alone, not raced.
func ExpireCandidates(tx *gorm.DB, cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	err := tx.Clauses(lockingForUpdateSkipLocked()).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("bookings.status = ? AND bookings.created_at <= ?", models.BookingPending, cutoff).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
