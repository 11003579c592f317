package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User carries the two denormalized rating scalars maintained exclusively
// by the Review Service. RatingAverage is null until the user's first
// review lands.
type User struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string          `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string          `gorm:"not null" json:"-"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Bio           string          `json:"bio"`
	Location      string          `json:"location"`
	Avatar        string          `json:"avatar"`
	RatingAverage *decimal.Decimal `gorm:"type:numeric(3,2)" json:"rating_average"`
	ReviewCount   int             `gorm:"not null;default:0" json:"review_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UpdatableUserFields is the enumerated, recognized set of keys a sparse
// user profile update may touch. Any key outside this set must be
// rejected with apperr.ErrUnknownUpdateField.
var UpdatableUserFields = map[string]struct{}{
	"firstName": {},
	"lastName":  {},
	"phone":     {},
	"bio":       {},
	"location":  {},
	"avatar":    {},
}
