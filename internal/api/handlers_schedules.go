package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetSchedules(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	schedules, err := handler.scheduleService.List(access.profile.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load schedules")
	}
	return c.JSON(fiber.Map{"schedules": schedules})
}

func (handler *Handler) CreateSchedule(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}

	payload := schedulePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	schedule, err := handler.scheduleService.Create(access.profile.ID, strings.TrimSpace(payload.Kind), strings.TrimSpace(payload.Label), strings.TrimSpace(payload.TimeOfDay), payload.Weekdays)
	if err != nil {
		if errors.Is(err, services.ErrInvalidScheduleTime) {
			return apiError(c, fiber.StatusBadRequest, "invalid schedule time")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create schedule")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"schedule": schedule})
}

func (handler *Handler) UpdateSchedule(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}
	scheduleID, err := parseUintParam(c, "scheduleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid schedule id")
	}

	payload := schedulePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if payload.Enabled == nil {
		return apiError(c, fiber.StatusBadRequest, "nothing to update")
	}

	if err := handler.scheduleService.SetEnabled(access.profile.ID, scheduleID, *payload.Enabled); err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			return apiError(c, fiber.StatusNotFound, "schedule not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update schedule")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteSchedule(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}
	scheduleID, err := parseUintParam(c, "scheduleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid schedule id")
	}

	if err := handler.scheduleService.Delete(access.profile.ID, scheduleID); err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			return apiError(c, fiber.StatusNotFound, "schedule not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete schedule")
	}
	return c.JSON(fiber.Map{"ok": true})
}
