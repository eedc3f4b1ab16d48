package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) CreateInvitation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "invite")
	if err != nil {
		return err
	}

	payload := invitationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	invitation, err := handler.invitationService.Invite(access.profile.ID, user.ID, payload.Email, payload.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationInvalidRole):
			return apiError(c, fiber.StatusBadRequest, "invalid invitation role")
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid email")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create invitation")
		}
	}

	inviterName := user.DisplayName
	if inviterName == "" {
		inviterName = user.Email
	}
	if sendErr := handler.mailer.SendInvitation(c.Context(), invitation.Email, inviterName, access.profile.Name, invitation.Role, invitation.Token); sendErr != nil {
		log.Printf("invitation email failed for invitation %d: %v", invitation.ID, sendErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": invitationView(invitation)})
}

func (handler *Handler) GetPendingInvitations(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "invite")
	if err != nil {
		return err
	}

	invitations, err := handler.invitationService.ListPending(access.profile.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load invitations")
	}

	views := make([]fiber.Map, 0, len(invitations))
	for _, invitation := range invitations {
		views = append(views, invitationView(invitation))
	}
	return c.JSON(fiber.Map{"invitations": views})
}

func (handler *Handler) CancelInvitation(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "invite")
	if err != nil {
		return err
	}

	invitationID, err := parseUintParam(c, "invitationID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid invitation id")
	}
	invitation, err := handler.repositories.Invitations.FindByID(invitationID)
	if err != nil || invitation.ProfileID != access.profile.ID {
		return apiError(c, fiber.StatusNotFound, "invitation not found")
	}

	if err := handler.invitationService.Cancel(invitationID); err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			return apiError(c, fiber.StatusNotFound, "invitation not found")
		case errors.Is(err, services.ErrInvitationNotPending):
			return apiError(c, fiber.StatusConflict, "invitation is no longer pending")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to cancel invitation")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

// LookupInvitation resolves an invitation by its emailed token. Expired
// invitations still resolve so the page can explain why the link is dead.
func (handler *Handler) LookupInvitation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "missing token")
	}

	invitation, err := handler.invitationService.Lookup(token)
	if err != nil {
		if errors.Is(err, services.ErrInvitationNotFound) {
			return apiError(c, fiber.StatusNotFound, "invitation not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load invitation")
	}

	profile, err := handler.repositories.Profiles.FindByID(invitation.ProfileID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}

	return c.JSON(fiber.Map{
		"invitation":    invitationView(invitation),
		"profile_name":  profile.Name,
		"matches_email": services.MatchesInvitedEmail(invitation, user.Email),
	})
}

func (handler *Handler) AcceptInvitation(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "missing token")
	}

	membership, err := handler.invitationService.Accept(token, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			return apiError(c, fiber.StatusNotFound, "invitation not found")
		case errors.Is(err, services.ErrInvitationNotPending):
			return apiError(c, fiber.StatusConflict, "invitation is no longer pending")
		case errors.Is(err, services.ErrInvitationExpired):
			return apiError(c, fiber.StatusGone, "invitation has expired")
		case errors.Is(err, services.ErrInvitationEmailMismatch):
			return apiError(c, fiber.StatusForbidden, "invitation was sent to a different email")
		case errors.Is(err, services.ErrAlreadyFamilyMember):
			return apiError(c, fiber.StatusConflict, "already a member of this family")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to accept invitation")
		}
	}

	// The freshly shared profile becomes the caller's active profile.
	if session, sessionErr := handler.sessions.Session(user.ID); sessionErr == nil {
		if forceErr := session.ForceSharedActive(membership.ProfileID); forceErr != nil {
			log.Printf("could not activate shared profile %d for user %d: %v", membership.ProfileID, user.ID, forceErr)
		}
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"profile_id": membership.ProfileID,
		"role":       membership.Role,
	})
}

func (handler *Handler) DeclineInvitation(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "missing token")
	}

	if err := handler.invitationService.Decline(token); err != nil {
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			return apiError(c, fiber.StatusNotFound, "invitation not found")
		case errors.Is(err, services.ErrInvitationNotPending):
			return apiError(c, fiber.StatusConflict, "invitation is no longer pending")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to decline invitation")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}
