package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) userSession(c *fiber.Ctx) (*services.ProfileSession, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	session, err := handler.sessions.Session(user.ID)
	if err != nil {
		return nil, apiError(c, fiber.StatusInternalServerError, "failed to load profiles")
	}
	return session, nil
}

func (handler *Handler) GetProfiles(c *fiber.Ctx) error {
	session, err := handler.userSession(c)
	if err != nil {
		return err
	}

	profiles, active := session.Snapshot()
	return c.JSON(rosterPayload(profiles, active, session.State(), session.Generation()))
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	session, err := handler.sessions.Session(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profiles")
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return apiError(c, fiber.StatusBadRequest, "profile name is required")
	}
	birthDate, err := parseOptionalDate(payload.BirthDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid birth date")
	}

	view, err := session.Create(user, name, birthDate, strings.TrimSpace(payload.PhotoKey))
	if err != nil {
		if errors.Is(err, services.ErrProfileQuotaExceeded) {
			return apiError(c, fiber.StatusPaymentRequired, "profile limit reached for your plan")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create profile")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"profile": profileView(view)})
}

func (handler *Handler) SwitchProfile(c *fiber.Ctx) error {
	session, err := handler.userSession(c)
	if err != nil {
		return err
	}
	profileID, err := parseUintParam(c, "profileID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid profile id")
	}

	outcome, err := session.Switch(profileID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSwitchInFlight):
			return apiError(c, fiber.StatusConflict, "a profile switch is already in progress")
		case errors.Is(err, services.ErrProfileNotInRoster):
			return apiError(c, fiber.StatusNotFound, "profile not found")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to switch profile")
		}
	}

	payload := fiber.Map{
		"ok":         true,
		"no_op":      outcome.NoOp,
		"generation": outcome.Generation,
	}
	if outcome.Active != nil {
		payload["active"] = profileView(*outcome.Active)
	}
	if outcome.Warning != "" {
		payload["warning"] = outcome.Warning
	}
	return c.JSON(payload)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(payload.Name); name != "" {
		updates["name"] = name
	}
	if payload.BirthDate != "" {
		birthDate, err := parseOptionalDate(payload.BirthDate)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid birth date")
		}
		updates["birth_date"] = birthDate
	}
	if payload.PhotoKey != "" {
		updates["photo_key"] = strings.TrimSpace(payload.PhotoKey)
	}
	if len(updates) == 0 {
		return apiError(c, fiber.StatusBadRequest, "nothing to update")
	}

	if err := handler.repositories.Profiles.UpdateByID(access.profile.ID, updates); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	if session, sessionErr := handler.userSession(c); sessionErr == nil {
		if reloadErr := session.Reload(); reloadErr != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to refresh profiles")
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteProfile runs the ordered cascade. Steps are not transactional: a
// failure aborts at that step and already-deleted categories stay gone.
func (handler *Handler) DeleteProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "delete")
	if err != nil {
		return err
	}
	if access.profile.OwnerID != user.ID {
		return apiError(c, fiber.StatusForbidden, services.CapabilityDenialMessage("delete"))
	}

	if err := handler.deletionWorkflow.Run(access.profile.ID, user.ID); err != nil {
		var cascadeErr *services.CascadeError
		if errors.As(err, &cascadeErr) {
			return apiError(c, fiber.StatusInternalServerError, cascadeErr.Message())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete profile")
	}

	if session, sessionErr := handler.sessions.Session(user.ID); sessionErr == nil {
		session.CompleteDeletion(access.profile.ID)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseOptionalDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
