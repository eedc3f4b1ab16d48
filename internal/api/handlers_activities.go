package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func parseActivityInput(c *fiber.Ctx) (services.ActivityInput, error) {
	payload := activityPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.ActivityInput{}, err
	}

	startedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(payload.StartedAt))
	if err != nil {
		return services.ActivityInput{}, err
	}

	input := services.ActivityInput{
		Kind:      strings.TrimSpace(payload.Kind),
		StartedAt: startedAt,
		Details:   payload.Details,
		Notes:     strings.TrimSpace(payload.Notes),
	}
	if trimmed := strings.TrimSpace(payload.EndedAt); trimmed != "" {
		endedAt, err := time.Parse(time.RFC3339, trimmed)
		if err != nil {
			return services.ActivityInput{}, err
		}
		input.EndedAt = &endedAt
	}
	return input, nil
}

func respondActivityError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidActivityKind):
		return apiError(c, fiber.StatusBadRequest, "invalid activity kind")
	case errors.Is(err, services.ErrInvalidActivityRange):
		return apiError(c, fiber.StatusBadRequest, "activity end precedes start")
	case errors.Is(err, services.ErrActivityNotFound):
		return apiError(c, fiber.StatusNotFound, "activity record not found")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save activity")
	}
}

func (handler *Handler) GetActivities(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	fromRaw := strings.TrimSpace(c.Query("from"))
	toRaw := strings.TrimSpace(c.Query("to"))
	if fromRaw != "" && toRaw != "" {
		from, fromErr := time.Parse(time.RFC3339, fromRaw)
		to, toErr := time.Parse(time.RFC3339, toRaw)
		if fromErr != nil || toErr != nil || to.Before(from) {
			return apiError(c, fiber.StatusBadRequest, "invalid time range")
		}
		records, err := handler.activityService.ListRange(access.profile.ID, from, to)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load activities")
		}
		return c.JSON(fiber.Map{"activities": records})
	}

	limit := 50
	if limitRaw := strings.TrimSpace(c.Query("limit")); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	records, err := handler.activityService.List(access.profile.ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load activities")
	}
	return c.JSON(fiber.Map{"activities": records})
}

func (handler *Handler) CreateActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}

	input, err := parseActivityInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.activityService.Record(access.profile.ID, user.ID, input)
	if err != nil {
		return respondActivityError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"activity": record})
}

func (handler *Handler) UpdateActivity(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}
	recordID, err := parseUintParam(c, "activityID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	input, err := parseActivityInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.activityService.Update(access.profile.ID, recordID, input)
	if err != nil {
		return respondActivityError(c, err)
	}
	return c.JSON(fiber.Map{"activity": record})
}

func (handler *Handler) DeleteActivity(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}
	recordID, err := parseUintParam(c, "activityID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	if err := handler.activityService.Delete(access.profile.ID, recordID); err != nil {
		return respondActivityError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
