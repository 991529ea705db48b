package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a user-defined label attached to expenses
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:text;not null;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Expenses []Expense `gorm:"many2many:expense_tags"`
}
