package models

import "time"

// SessionPreference is the server-side channel for small UI preference
// values, keyed by session and preference name. The cookie channel
// mirrors the same names.
type SessionPreference struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"type:text;not null;uniqueIndex:idx_session_pref"`
	Name      string `gorm:"type:text;not null;uniqueIndex:idx_session_pref"`
	Value     string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
