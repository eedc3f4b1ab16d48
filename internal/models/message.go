package models

import "time"

// FamilyMessage is one entry in the caregiver chat thread of a profile.
type FamilyMessage struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;index:idx_message_profile_created"`
	SenderID  uint   `gorm:"not null"`
	Body      string `gorm:"not null"`
	CreatedAt time.Time `gorm:"index:idx_message_profile_created"`
}
