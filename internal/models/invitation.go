package models

import "time"

const (
	InvitationPending   = "pending"
	InvitationAccepted  = "accepted"
	InvitationDeclined  = "declined"
	InvitationCancelled = "cancelled"
)

// FamilyInvitation is a pending or resolved offer of access to a profile.
// The token is the only lookup key reachable from an email link.
type FamilyInvitation struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"not null"`
	ProfileID uint   `gorm:"not null;index"`
	Role      string `gorm:"not null;default:viewer"`
	InviterID uint   `gorm:"not null"`
	Status    string `gorm:"not null;default:pending"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (invitation *FamilyInvitation) IsExpired(now time.Time) bool {
	return now.After(invitation.ExpiresAt)
}

func (invitation *FamilyInvitation) IsPending(now time.Time) bool {
	return invitation.Status == InvitationPending && !invitation.IsExpired(now)
}
