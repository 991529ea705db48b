package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense represents a single recorded meal expense
type Expense struct {
	ID           uint  `gorm:"primaryKey"`
	RestaurantID *uint `gorm:"index"`

	Description string  `gorm:"type:text"`
	MealType    string  `gorm:"type:text;index"`
	OrderType   string  `gorm:"type:text"`
	Category    string  `gorm:"type:text;index"`
	Amount      float64 `gorm:"not null"`

	// SpentAt is the expense date the list filters match against
	SpentAt time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:ID"`
	Tags       []Tag       `gorm:"many2many:expense_tags"`
}
