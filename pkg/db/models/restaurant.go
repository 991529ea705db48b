package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant represents a place expenses are recorded against
type Restaurant struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"type:text;not null;index"`
	Cuisine string `gorm:"type:text"`
	Address string `gorm:"type:text"`
	Website string `gorm:"type:text"`
	Rating  int    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:RestaurantID"`
}
