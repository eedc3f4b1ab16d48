package models

import "time"

type Profile struct {
	ID        uint       `gorm:"primaryKey"`
	OwnerID   uint       `gorm:"not null;index"`
	Name      string     `gorm:"not null"`
	BirthDate *time.Time `gorm:"type:date"`
	PhotoKey  string
	IsActive  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileView is the per-viewer projection of a profile. IsShared and
// UserRole are computed from ownership and membership records at load
// time and never persisted on the profile row.
type ProfileView struct {
	Profile
	IsShared bool
	UserRole string
}
