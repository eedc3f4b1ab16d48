package models

import "time"

const (
	SoundWhiteNoise = "white_noise"
	SoundPinkNoise  = "pink_noise"
	SoundBrownNoise = "brown_noise"
	SoundHeartbeat  = "heartbeat"
	SoundLullaby    = "lullaby"
)

// SoundPreset is one entry of the ambient-sound catalog. Synthesis happens
// on the client; the server only serves the preset metadata.
type SoundPreset struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	Kind      string `gorm:"not null"`
	Builtin   bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

type SoundFavorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:uidx_sound_favorite"`
	PresetID  uint `gorm:"not null;uniqueIndex:uidx_sound_favorite"`
	CreatedAt time.Time
}
