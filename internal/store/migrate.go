package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rentalmarket/core/models"
)

// Migrate runs AutoMigrate for every entity plus the raw DDL GORM's struct
// tags cannot express: partial unique indexes for the conversation
// uniqueness rule, where a NULL booking_id forms its own equivalence class.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.ItemImage{},
		&models.Booking{},
		&models.Review{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		// One conversation per pair when there is no booking context.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_pair_no_booking
			ON conversations (p1_id, p2_id) WHERE booking_id IS NULL`,
		// One conversation per (pair, booking) when there is a booking context.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_pair_booking
			ON conversations (p1_id, p2_id, booking_id) WHERE booking_id IS NOT NULL`,
		// Supports the overlap scan: the transactional lock+scan in
		// CreateBookingNoOverlap is the only overlap check; this plain
		// (non-unique) composite index keeps its lookups by item+status
		// cheap and does not itself reject overlapping rows.
		`CREATE INDEX IF NOT EXISTS idx_bookings_item_status_dates
			ON bookings (item_id, status, start_date, end_date)`,
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS chk_bookings_date_order`,
		`ALTER TABLE bookings ADD CONSTRAINT chk_bookings_date_order CHECK (start_date < end_date)`,
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS chk_bookings_renter_not_owner`,
		`ALTER TABLE bookings ADD CONSTRAINT chk_bookings_renter_not_owner CHECK (renter_id <> owner_id)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate ddl %q: %w", stmt, err)
		}
	}
	return nil
}
