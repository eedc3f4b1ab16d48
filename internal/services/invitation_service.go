package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nidolabs/nido/internal/models"
)

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationNotPending    = errors.New("invitation is no longer pending")
	ErrInvitationExpired       = errors.New("invitation has expired")
	ErrInvitationEmailMismatch = errors.New("invitation was sent to a different email")
	ErrInvitationInvalidRole   = errors.New("invalid invitation role")
	ErrAlreadyFamilyMember     = errors.New("already a member of this family")
)

const defaultInvitationTTL = 14 * 24 * time.Hour

type InvitationRepository interface {
	FindByToken(token string) (models.FamilyInvitation, bool, error)
	FindByID(invitationID uint) (models.FamilyInvitation, error)
	ListPendingByProfile(profileID uint) ([]models.FamilyInvitation, error)
	Create(invitation *models.FamilyInvitation) error
	UpdateStatus(invitationID uint, status string) error
}

type InvitationMembershipRepository interface {
	FindByProfileAndUser(profileID uint, userID uint) (models.FamilyMembership, bool, error)
	Create(membership *models.FamilyMembership) error
	UpdateByID(membershipID uint, updates map[string]any) error
}

type InvitationService struct {
	invitations InvitationRepository
	memberships InvitationMembershipRepository
}

func NewInvitationService(invitations InvitationRepository, memberships InvitationMembershipRepository) *InvitationService {
	return &InvitationService{invitations: invitations, memberships: memberships}
}

// Invite creates a pending invitation with an unguessable token, the only
// key an email link can use to resolve it.
func (service *InvitationService) Invite(profileID uint, inviterID uint, emailRaw string, role string) (models.FamilyInvitation, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.FamilyInvitation{}, ErrAuthCredentialsInvalid
	}
	if role != models.RoleOwner && role != models.RoleCaregiver && role != models.RoleViewer {
		return models.FamilyInvitation{}, ErrInvitationInvalidRole
	}

	invitation := models.FamilyInvitation{
		Token:     uuid.NewString(),
		Email:     email,
		ProfileID: profileID,
		Role:      role,
		InviterID: inviterID,
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(defaultInvitationTTL),
		CreatedAt: time.Now(),
	}
	if err := service.invitations.Create(&invitation); err != nil {
		return models.FamilyInvitation{}, fmt.Errorf("create invitation: %w", err)
	}
	return invitation, nil
}

// Lookup resolves a token to its invitation. Expired invitations still
// resolve so the acceptance page can explain their state; they are never
// re-activated.
func (service *InvitationService) Lookup(token string) (models.FamilyInvitation, error) {
	invitation, found, err := service.invitations.FindByToken(token)
	if err != nil {
		return models.FamilyInvitation{}, err
	}
	if !found {
		return models.FamilyInvitation{}, ErrInvitationNotFound
	}
	return invitation, nil
}

// MatchesInvitedEmail reports whether the authenticated user's email equals
// the invitation target under normalization. Only a match allows acceptance
// to auto-complete; a mismatch forces the explicit sign-in-and-accept path.
func MatchesInvitedEmail(invitation models.FamilyInvitation, userEmailRaw string) bool {
	userEmail := NormalizeAuthEmail(userEmailRaw)
	return userEmail != "" && userEmail == NormalizeAuthEmail(invitation.Email)
}

// Accept turns a pending invitation into an active membership for the
// authenticated user. The caller's email must match the invitation target.
func (service *InvitationService) Accept(token string, user *models.User) (models.FamilyMembership, error) {
	invitation, err := service.Lookup(token)
	if err != nil {
		return models.FamilyMembership{}, err
	}
	if invitation.Status != models.InvitationPending {
		return models.FamilyMembership{}, ErrInvitationNotPending
	}
	if invitation.IsExpired(time.Now()) {
		return models.FamilyMembership{}, ErrInvitationExpired
	}
	if !MatchesInvitedEmail(invitation, user.Email) {
		return models.FamilyMembership{}, ErrInvitationEmailMismatch
	}

	existing, found, err := service.memberships.FindByProfileAndUser(invitation.ProfileID, user.ID)
	if err != nil {
		return models.FamilyMembership{}, err
	}
	if found && existing.IsActive() {
		// Membership already in place; just settle the invitation.
		if err := service.invitations.UpdateStatus(invitation.ID, models.InvitationAccepted); err != nil {
			return models.FamilyMembership{}, err
		}
		return models.FamilyMembership{}, ErrAlreadyFamilyMember
	}

	now := time.Now()
	if found {
		// Removal keeps the row for history, so a re-invited member gets
		// that row revived under the new invitation's role, with the old
		// permission overrides cleared.
		if err := service.memberships.UpdateByID(existing.ID, map[string]any{
			"role":       invitation.Role,
			"status":     models.MembershipActive,
			"can_edit":   nil,
			"can_delete": nil,
			"can_invite": nil,
			"invited_at": invitation.CreatedAt,
			"joined_at":  now,
		}); err != nil {
			return models.FamilyMembership{}, fmt.Errorf("revive membership: %w", err)
		}
		if err := service.invitations.UpdateStatus(invitation.ID, models.InvitationAccepted); err != nil {
			return models.FamilyMembership{}, err
		}
		existing.Role = invitation.Role
		existing.Status = models.MembershipActive
		existing.CanEdit = nil
		existing.CanDelete = nil
		existing.CanInvite = nil
		existing.InvitedAt = invitation.CreatedAt
		existing.JoinedAt = &now
		return existing, nil
	}

	membership := models.FamilyMembership{
		ProfileID: invitation.ProfileID,
		UserID:    user.ID,
		Role:      invitation.Role,
		Status:    models.MembershipActive,
		InvitedAt: invitation.CreatedAt,
		JoinedAt:  &now,
	}
	if err := service.memberships.Create(&membership); err != nil {
		return models.FamilyMembership{}, fmt.Errorf("create membership: %w", err)
	}

	if err := service.invitations.UpdateStatus(invitation.ID, models.InvitationAccepted); err != nil {
		return models.FamilyMembership{}, err
	}
	return membership, nil
}

// Decline marks a pending invitation as declined.
func (service *InvitationService) Decline(token string) error {
	invitation, err := service.Lookup(token)
	if err != nil {
		return err
	}
	if invitation.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}
	return service.invitations.UpdateStatus(invitation.ID, models.InvitationDeclined)
}

// Cancel withdraws a pending invitation; only profile members holding
// canInvite reach this through the API layer.
func (service *InvitationService) Cancel(invitationID uint) error {
	invitation, err := service.invitations.FindByID(invitationID)
	if err != nil {
		return ErrInvitationNotFound
	}
	if invitation.Status != models.InvitationPending {
		return ErrInvitationNotPending
	}
	return service.invitations.UpdateStatus(invitation.ID, models.InvitationCancelled)
}

// ListPending lists the outstanding invitations of a profile.
func (service *InvitationService) ListPending(profileID uint) ([]models.FamilyInvitation, error) {
	return service.invitations.ListPendingByProfile(profileID)
}
