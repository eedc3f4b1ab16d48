package services

import "github.com/nidolabs/nido/internal/models"

// Capabilities is the resolved permission set of one user on one profile.
type Capabilities struct {
	CanView   bool `json:"can_view"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
	CanInvite bool `json:"can_invite"`
}

var noAccess = Capabilities{}

func ownerCapabilities() Capabilities {
	return Capabilities{CanView: true, CanEdit: true, CanDelete: true, CanInvite: true}
}

// roleDefaultCapabilities supplies the fallback when a membership carries
// no explicit permission flags.
func roleDefaultCapabilities(role string) Capabilities {
	switch role {
	case models.RoleOwner:
		return ownerCapabilities()
	case models.RoleCaregiver:
		return Capabilities{CanView: true, CanEdit: true}
	case models.RoleViewer:
		return Capabilities{CanView: true}
	default:
		return noAccess
	}
}

// ResolveCapabilities computes the viewer's role and capability set for a
// profile. Profile owners hold every capability. Everyone else needs an
// active membership; its stored flags override the role defaults where
// present. The result is derived per call and must not be cached across a
// profile switch.
func ResolveCapabilities(profile models.Profile, viewerID uint, membership *models.FamilyMembership) (string, Capabilities) {
	if profile.OwnerID == viewerID {
		return models.RoleOwner, ownerCapabilities()
	}
	if !membership.IsActive() {
		return "", noAccess
	}

	capabilities := roleDefaultCapabilities(membership.Role)
	if !capabilities.CanView {
		return "", noAccess
	}
	if membership.CanEdit != nil {
		capabilities.CanEdit = *membership.CanEdit
	}
	if membership.CanDelete != nil {
		capabilities.CanDelete = *membership.CanDelete
	}
	if membership.CanInvite != nil {
		capabilities.CanInvite = *membership.CanInvite
	}
	return membership.Role, capabilities
}

// CapabilityDenialMessage names the specific missing capability so the
// caller never sees a generic "forbidden".
func CapabilityDenialMessage(capability string) string {
	switch capability {
	case "edit":
		return "you do not have permission to edit this profile"
	case "delete":
		return "you do not have permission to delete this profile"
	case "invite":
		return "you do not have permission to invite caregivers to this profile"
	case "view":
		return "you do not have access to this profile"
	default:
		return "you do not have permission to perform this action"
	}
}
