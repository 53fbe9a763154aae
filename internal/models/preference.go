package models

import (
	"time"

	"gorm.io/gorm"
)

// Storage keys persisted per visitor
const (
	PreferenceKeyTheme    = "theme"
	PreferenceKeyLanguage = "language"
)

// Preference is one persisted key/value pair for a visitor
type Preference struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	VisitorID string `gorm:"type:varchar(64);uniqueIndex:idx_preferences_visitor_key" json:"visitor_id"`
	Key       string `gorm:"type:varchar(64);uniqueIndex:idx_preferences_visitor_key" json:"key"`
	Value     string `gorm:"type:varchar(255)" json:"value"`
}
