package models

import "time"

const (
	PlanTierBasic   = "basic"
	PlanTierPremium = "premium"
)

type User struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	DisplayName   string
	PlanTier      string `gorm:"not null;default:basic"`
	PlanExpiresAt *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}

// EffectivePlanTier downgrades an expired premium plan to basic.
func (user *User) EffectivePlanTier(now time.Time) string {
	if user.PlanTier != PlanTierPremium {
		return PlanTierBasic
	}
	if user.PlanExpiresAt != nil && user.PlanExpiresAt.Before(now) {
		return PlanTierBasic
	}
	return PlanTierPremium
}
