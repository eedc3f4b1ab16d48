package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/models"
	"github.com/nidolabs/nido/internal/services"
)

func publicUser(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"plan_tier":    user.PlanTier,
	}
}

func profileView(view models.ProfileView) fiber.Map {
	payload := fiber.Map{
		"id":        view.ID,
		"owner_id":  view.OwnerID,
		"name":      view.Name,
		"photo_key": view.PhotoKey,
		"is_shared": view.IsShared,
		"user_role": view.UserRole,
	}
	if view.BirthDate != nil {
		payload["birth_date"] = view.BirthDate.Format("2006-01-02")
	}
	return payload
}

func profileViews(views []models.ProfileView) []fiber.Map {
	result := make([]fiber.Map, 0, len(views))
	for _, view := range views {
		result = append(result, profileView(view))
	}
	return result
}

func rosterPayload(profiles []models.ProfileView, active *models.ProfileView, state services.SessionState, generation uint64) fiber.Map {
	payload := fiber.Map{
		"profiles":   profileViews(profiles),
		"state":      state,
		"generation": generation,
	}
	if active != nil {
		payload["active"] = profileView(*active)
	}
	return payload
}

func membershipView(membership models.FamilyMembership, capabilities services.Capabilities) fiber.Map {
	payload := fiber.Map{
		"id":           membership.ID,
		"profile_id":   membership.ProfileID,
		"user_id":      membership.UserID,
		"role":         membership.Role,
		"status":       membership.Status,
		"capabilities": capabilities,
		"invited_at":   membership.InvitedAt,
	}
	if membership.JoinedAt != nil {
		payload["joined_at"] = membership.JoinedAt
	}
	return payload
}

func invitationView(invitation models.FamilyInvitation) fiber.Map {
	return fiber.Map{
		"id":         invitation.ID,
		"token":      invitation.Token,
		"email":      invitation.Email,
		"profile_id": invitation.ProfileID,
		"role":       invitation.Role,
		"status":     invitation.Status,
		"expires_at": invitation.ExpiresAt,
		"created_at": invitation.CreatedAt,
	}
}
