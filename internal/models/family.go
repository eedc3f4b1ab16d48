package models

import "time"

const (
	RoleOwner     = "owner"
	RoleCaregiver = "caregiver"
	RoleViewer    = "viewer"
)

const (
	MembershipActive  = "active"
	MembershipPending = "pending"
	MembershipRemoved = "removed"
)

// FamilyMembership grants one user access to a profile they do not own.
// The owner role here denotes a delegated co-owner, distinct from the
// profile's creator. Permission flags are nullable: a nil flag falls back
// to the role's default in the permission resolver.
type FamilyMembership struct {
	ID        uint   `gorm:"primaryKey"`
	ProfileID uint   `gorm:"not null;uniqueIndex:uidx_profile_member"`
	UserID    uint   `gorm:"not null;uniqueIndex:uidx_profile_member"`
	Role      string `gorm:"not null;default:viewer"`
	Status    string `gorm:"not null;default:pending"`
	CanEdit   *bool
	CanDelete *bool
	CanInvite *bool
	InvitedAt time.Time
	JoinedAt  *time.Time
}

func (membership *FamilyMembership) IsActive() bool {
	return membership != nil && membership.Status == MembershipActive
}
