package booking_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/booking"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

func openTestService(t *testing.T, now time.Time) (*booking.Service, *store.Store) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping booking integration test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		for _, table := range []string{"bookings", "items", "users"} {
			db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		}
	})
	s := store.New(db)
	return booking.NewService(s, clock.Fixed{At: now}), s
}

func seedItemWithOwner(t *testing.T, s *store.Store, price decimal.Decimal, active bool) (*models.Item, *models.User, *models.User) {
	t.Helper()
	owner := &models.User{Email: "owner@booking.test", PasswordHash: "x"}
	renter := &models.User{Email: "renter@booking.test", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), owner))
	require.NoError(t, s.CreateUser(context.Background(), renter))
	item := &models.Item{OwnerID: owner.ID, Title: "Projector", PricePerDay: price, Condition: models.ConditionGood, IsActive: active}
	require.NoError(t, s.CreateItem(context.Background(), item))
	return item, owner, renter
}

// TestCreate_RejectsOverlap verifies a second booking request for an
// intersecting range on the same item is refused end to end, through the
// service layer, not just the bare Store function.
func TestCreate_RejectsOverlap(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, now)
	item, _, renter := seedItemWithOwner(t, s, decimal.NewFromInt(20), true)

	_, err := svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-12"), date("2026-08-20"))
	assert.ErrorIs(t, err, apperr.ErrBookingOverlap)
}

func TestCreate_RejectsSelfBooking(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, now)
	item, owner, _ := seedItemWithOwner(t, s, decimal.NewFromInt(20), true)

	_, err := svc.Create(context.Background(), owner.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	assert.ErrorIs(t, err, apperr.ErrSelfBooking)
}

func TestCreate_RejectsInactiveItem(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, now)
	item, _, renter := seedItemWithOwner(t, s, decimal.NewFromInt(20), false)

	_, err := svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	assert.ErrorIs(t, err, apperr.ErrItemInactive)
}

// TestTransition_RejectsApprovalPastExpiryThreshold verifies a PENDING
// booking older than the 48 hour threshold can no longer move to APPROVED.
func TestTransition_RejectsApprovalPastExpiryThreshold(t *testing.T) {
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, created)
	item, owner, renter := seedItemWithOwner(t, s, decimal.NewFromInt(20), true)

	b, err := svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	require.NoError(t, err)

	later := booking.NewService(s, clock.Fixed{At: created.Add(49 * time.Hour)})
	_, err = later.Transition(context.Background(), owner.ID, b.ID, models.BookingApproved)
	assert.ErrorIs(t, err, apperr.ErrBookingExpired)
}

func TestTransition_AllowsApprovalWithinThreshold(t *testing.T) {
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, created)
	item, owner, renter := seedItemWithOwner(t, s, decimal.NewFromInt(20), true)

	b, err := svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	require.NoError(t, err)

	soon := booking.NewService(s, clock.Fixed{At: created.Add(10 * time.Hour)})
	approved, err := soon.Transition(context.Background(), owner.ID, b.ID, models.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, approved.Status)
}

func TestTransition_RejectsWrongActor(t *testing.T) {
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc, s := openTestService(t, created)
	item, _, renter := seedItemWithOwner(t, s, decimal.NewFromInt(20), true)

	b, err := svc.Create(context.Background(), renter.ID, item.ID, date("2026-08-10"), date("2026-08-15"))
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), renter.ID, b.ID, models.BookingApproved)
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
