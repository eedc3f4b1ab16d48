package services

import (
	"errors"

	"github.com/nidolabs/nido/internal/models"
)

var (
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrInvalidMemberRole   = errors.New("invalid member role")
	ErrCannotRemoveCreator = errors.New("the profile creator cannot be removed")
)

type FamilyMembershipRepository interface {
	ListByProfile(profileID uint) ([]models.FamilyMembership, error)
	FindByID(membershipID uint) (models.FamilyMembership, error)
	FindActive(profileID uint, userID uint) (models.FamilyMembership, bool, error)
	UpdateByID(membershipID uint, updates map[string]any) error
	MarkRemoved(membershipID uint) error
}

// MemberUpdate carries a partial role/permission change; nil flags clear
// the override back to the role default.
type MemberUpdate struct {
	Role      string
	CanEdit   *bool
	CanDelete *bool
	CanInvite *bool
}

type FamilyService struct {
	memberships FamilyMembershipRepository
}

func NewFamilyService(memberships FamilyMembershipRepository) *FamilyService {
	return &FamilyService{memberships: memberships}
}

func (service *FamilyService) ListMembers(profileID uint) ([]models.FamilyMembership, error) {
	return service.memberships.ListByProfile(profileID)
}

func (service *FamilyService) ActiveMembership(profileID uint, userID uint) (*models.FamilyMembership, error) {
	membership, found, err := service.memberships.FindActive(profileID, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &membership, nil
}

// UpdateMember changes a member's role and permission overrides.
func (service *FamilyService) UpdateMember(membershipID uint, update MemberUpdate) error {
	if update.Role != models.RoleOwner && update.Role != models.RoleCaregiver && update.Role != models.RoleViewer {
		return ErrInvalidMemberRole
	}
	if _, err := service.memberships.FindByID(membershipID); err != nil {
		return ErrMembershipNotFound
	}
	return service.memberships.UpdateByID(membershipID, map[string]any{
		"role":       update.Role,
		"can_edit":   update.CanEdit,
		"can_delete": update.CanDelete,
		"can_invite": update.CanInvite,
	})
}

// RemoveMember revokes a member's access without deleting the history row.
func (service *FamilyService) RemoveMember(membershipID uint) error {
	if _, err := service.memberships.FindByID(membershipID); err != nil {
		return ErrMembershipNotFound
	}
	return service.memberships.MarkRemoved(membershipID)
}

// Leave lets a member drop their own access to a shared profile.
func (service *FamilyService) Leave(profileID uint, userID uint) error {
	membership, found, err := service.memberships.FindActive(profileID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrMembershipNotFound
	}
	return service.memberships.MarkRemoved(membership.ID)
}
