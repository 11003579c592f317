package expirer_test

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

	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/expirer"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

func openTestExpirer(t *testing.T, now time.Time) (*expirer.Expirer, *store.Store) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping expirer integration test")
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
	return expirer.New(s, clock.Fixed{At: now}), s
}

func pendingBookingCreatedAt(t *testing.T, s *store.Store, createdAt time.Time) *models.Booking {
	t.Helper()
	owner := &models.User{Email: "owner@expirer.test", PasswordHash: "x"}
	renter := &models.User{Email: "renter@expirer.test", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), owner))
	require.NoError(t, s.CreateUser(context.Background(), renter))
	item := &models.Item{OwnerID: owner.ID, Title: "Drone", PricePerDay: decimal.NewFromInt(30), Condition: models.ConditionGood, IsActive: true}
	require.NoError(t, s.CreateItem(context.Background(), item))

	b := &models.Booking{
		ItemID: item.ID, RenterID: renter.ID, OwnerID: owner.ID,
		StartDate: createdAt.AddDate(0, 0, 1), EndDate: createdAt.AddDate(0, 0, 3),
		TotalDays: 2, BaseTotal: decimal.NewFromInt(60), FinalTotal: decimal.NewFromInt(60),
		Status: models.BookingPending, CreatedAt: createdAt,
	}
	require.NoError(t, s.DB.Transaction(func(tx *gorm.DB) error {
		return store.CreateBookingNoOverlap(tx, b)
	}))
	return b
}

func TestRun_CancelsStalePendingBookings(t *testing.T) {
	now := time.Now().UTC()
	e, s := openTestExpirer(t, now)
	stale := pendingBookingCreatedAt(t, s, now.Add(-49*time.Hour))

	result, err := e.Run(context.Background(), expirer.Options{ThresholdHours: 48})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Cancelled)

	reloaded, err := s.GetBooking(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, reloaded.Status)
}

func TestRun_LeavesFreshPendingBookingsAlone(t *testing.T) {
	now := time.Now().UTC()
	e, s := openTestExpirer(t, now)
	fresh := pendingBookingCreatedAt(t, s, now.Add(-2*time.Hour))

	result, err := e.Run(context.Background(), expirer.Options{ThresholdHours: 48})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)

	reloaded, err := s.GetBooking(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, reloaded.Status)
}

func TestRun_DryRunDoesNotCommit(t *testing.T) {
	now := time.Now().UTC()
	e, s := openTestExpirer(t, now)
	stale := pendingBookingCreatedAt(t, s, now.Add(-72*time.Hour))

	result, err := e.Run(context.Background(), expirer.Options{ThresholdHours: 48, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Cancelled)
	assert.True(t, result.DryRun)

	reloaded, err := s.GetBooking(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, reloaded.Status, "dry run must not commit the cancellation")
}
