package models

import (
	"time"

	"gorm.io/gorm"
)

// SavedFilter represents a named filter preset stored as the encoded
// query string it re-applies, e.g. "meal_type=lunch&tags=thai"
type SavedFilter struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:text;not null;uniqueIndex"`
	Query       string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
