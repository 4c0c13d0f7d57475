package models

import "time"

// Budget represents a monthly spending limit for a single category or for a
// category group. Exactly one of CategoryID and GroupID is set; the scope is
// fixed at creation time and only Amount and Note may change afterwards
// (changing what historical spend a budget represented would rewrite history,
// so a re-scoped budget is a delete plus a create).
type Budget struct {
	Base
	UserID     string  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID *string `gorm:"type:uuid" json:"category_id,omitempty"`
	GroupID    *string `gorm:"type:uuid" json:"group_id,omitempty"`

	// Period is the first day of the month this budget applies to.
	Period time.Time `gorm:"not null;index" json:"period"`
	Amount int64     `gorm:"type:bigint;not null" json:"amount"`
	Note   string    `json:"note"`

	// Relationships
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Group    *CategoryGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// IsGrouped reports whether this budget targets a category group.
func (b *Budget) IsGrouped() bool {
	return b.GroupID != nil
}
