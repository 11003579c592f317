package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending        BookingStatus = "PENDING"
	BookingApproved       BookingStatus = "APPROVED"
	BookingPaymentPending BookingStatus = "PAYMENT_PENDING"
	BookingCompleted      BookingStatus = "COMPLETED"
	BookingRejected       BookingStatus = "REJECTED"
	BookingCancelled      BookingStatus = "CANCELLED"
)

// ActiveStatuses is the GLOSSARY's "Active booking" set: the only statuses
// the overlap invariant and the Availability Projector consider.
var ActiveStatuses = []BookingStatus{BookingPending, BookingApproved, BookingPaymentPending}

func (s BookingStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingRejected || s == BookingCancelled
}

// Booking's pricing snapshot fields are set once at creation and never
// mutated thereafter. Owner is denormalized from Item.OwnerID at creation
// time and is likewise immutable.
type Booking struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	RenterID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"renter_id"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time       `gorm:"type:date;not null" json:"end_date"`
	TotalDays      int             `gorm:"not null;check:total_days >= 1" json:"total_days"`
	BaseTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_total"`
	DiscountRate   decimal.Decimal `gorm:"type:numeric(4,2);not null" json:"discount_rate"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	FinalTotal     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_total"`
	Deposit        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"deposit"`
	Status         BookingStatus   `gorm:"type:varchar(24);not null;index" json:"status"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
