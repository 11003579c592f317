package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemCondition string

const (
	ConditionNew       ItemCondition = "new"
	ConditionExcellent ItemCondition = "excellent"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
)

// Item is exclusively owned by one User and carries the pricing inputs the
// Pricing Engine reads at booking-creation time. Location is a plain
// scalar rather than a separate table (see DESIGN.md "Dropped / adapted
// modules").
type Item struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	CategoryID      *int            `gorm:"index" json:"category_id"`
	Title           string          `gorm:"not null" json:"title"`
	Description     string          `json:"description"`
	PricePerDay     decimal.Decimal `gorm:"type:numeric(12,2);not null;check:price_per_day >= 0" json:"price_per_day"`
	DepositAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;check:deposit_amount >= 0" json:"deposit_amount"`
	Condition       ItemCondition   `gorm:"type:varchar(16);not null" json:"condition"`
	Location        string          `json:"location"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	Images          []ItemImage     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Item) TableName() string { return "items" }

func (it *Item) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

type ItemImage struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	URL      string    `gorm:"not null" json:"url"`
	Position int       `gorm:"not null;default:0" json:"position"`
	IsCover  bool       `gorm:"not null;default:false" json:"is_cover"`
}

func (ItemImage) TableName() string { return "item_images" }

func (i *ItemImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// UpdatableItemFields is the enumerated, recognized set of keys a sparse
// item update may touch.
var UpdatableItemFields = map[string]struct{}{
	"title":         {},
	"description":   {},
	"category":      {},
	"condition":     {},
	"pricePerDay":   {},
	"depositAmount": {},
	"location":      {},
	"isActive":      {},
}
