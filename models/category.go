package models

// Category is a flat table with a nullable parent reference forming a
// tree. Acyclicity is enforced at insertion/update time by walking
// ancestors in internal/store, not by a database-level recursive
// constraint.
type Category struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Name     string `gorm:"not null" json:"name"`
	Icon     string `json:"icon"`
	ParentID *int   `gorm:"index" json:"parent_id"`
}

func (Category) TableName() string { return "categories" }
