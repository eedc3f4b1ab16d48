package models

import "time"

// CareSchedule is a recurring reminder slot derived for a profile, such
// as an expected nap window or feeding time.
type CareSchedule struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;index"`
	Kind      string `gorm:"not null"`
	Label     string
	TimeOfDay string `gorm:"not null"` // HH:MM, profile-local
	Weekdays  []int  `gorm:"serializer:json"`
	Enabled   bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
