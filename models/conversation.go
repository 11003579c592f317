package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation's (P1, P2) pair is normalized so P1 < P2 under lexicographic
// order on the UUID's string form. BookingID is nullable; the Store
// enforces uniqueness on (P1, P2, BookingID) treating NULL BookingID
// as its own equivalence class via a pair of partial unique indexes — see
// internal/store/migrate.go.
type Conversation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	P1ID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"p1_id"`
	P2ID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"p2_id"`
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"booking_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NormalizePair returns (p1, p2) such that p1 < p2 lexicographically on
// the identifiers' string form.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
