package models

import "time"

// MemoryEntry is a photo or milestone saved against a profile. The photo
// itself lives in object storage; only the key is tracked here.
type MemoryEntry struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;index"`
	CreatedBy uint   `gorm:"not null"`
	Title     string `gorm:"not null"`
	PhotoKey  string
	TakenAt   time.Time `gorm:"type:date"`
	Notes     string
	CreatedAt time.Time
}
