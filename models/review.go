package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewDirection string

const (
	DirectionRenterToOwner ReviewDirection = "RENTER_TO_OWNER"
	DirectionOwnerToRenter ReviewDirection = "OWNER_TO_RENTER"
)

// Review is append-only once valid; uniqueness on (BookingID, Direction)
// is enforced at the Store layer.
type Review struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_review_booking_direction" json:"booking_id"`
	ReviewerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	ReviewedUserID uuid.UUID       `gorm:"type:uuid;not null;index" json:"reviewed_user_id"`
	Direction      ReviewDirection `gorm:"type:varchar(20);not null;uniqueIndex:idx_review_booking_direction" json:"direction"`
	Rating         int             `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment        string          `gorm:"not null" json:"comment"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
