package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetFamilyMembers(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	members, err := handler.familyService.ListMembers(access.profile.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load members")
	}

	views := make([]fiber.Map, 0, len(members))
	for index := range members {
		member := members[index]
		_, capabilities := services.ResolveCapabilities(access.profile, member.UserID, &member)
		views = append(views, membershipView(member, capabilities))
	}
	return c.JSON(fiber.Map{"members": views})
}

func (handler *Handler) UpdateFamilyMember(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "invite")
	if err != nil {
		return err
	}

	membershipID, err := parseUintParam(c, "memberID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid member id")
	}
	membership, err := handler.repositories.Memberships.FindByID(membershipID)
	if err != nil || membership.ProfileID != access.profile.ID {
		return apiError(c, fiber.StatusNotFound, "member not found")
	}

	payload := memberUpdatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	update := services.MemberUpdate{
		Role:      payload.Role,
		CanEdit:   payload.CanEdit,
		CanDelete: payload.CanDelete,
		CanInvite: payload.CanInvite,
	}
	if err := handler.familyService.UpdateMember(membershipID, update); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMemberRole):
			return apiError(c, fiber.StatusBadRequest, "invalid member role")
		case errors.Is(err, services.ErrMembershipNotFound):
			return apiError(c, fiber.StatusNotFound, "member not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update member")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) RemoveFamilyMember(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "invite")
	if err != nil {
		return err
	}

	membershipID, err := parseUintParam(c, "memberID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid member id")
	}
	membership, err := handler.repositories.Memberships.FindByID(membershipID)
	if err != nil || membership.ProfileID != access.profile.ID {
		return apiError(c, fiber.StatusNotFound, "member not found")
	}

	if err := handler.familyService.RemoveMember(membershipID); err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return apiError(c, fiber.StatusNotFound, "member not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to remove member")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// LeaveFamily removes the caller's own membership for a shared profile.
func (handler *Handler) LeaveFamily(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	profileID, err := parseUintParam(c, "profileID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid profile id")
	}

	if err := handler.familyService.Leave(profileID, user.ID); err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return apiError(c, fiber.StatusNotFound, "membership not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to leave family")
	}

	if session, sessionErr := handler.sessions.Session(user.ID); sessionErr == nil {
		session.CompleteDeletion(profileID)
	}
	return c.JSON(fiber.Map{"ok": true})
}
