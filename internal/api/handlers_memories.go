package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetMemories(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	entries, err := handler.memoryService.List(access.profile.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load memories")
	}
	return c.JSON(fiber.Map{"memories": entries})
}

func (handler *Handler) CreateMemory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}

	payload := memoryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	takenAt := time.Now().In(handler.location)
	if trimmed := strings.TrimSpace(payload.TakenAt); trimmed != "" {
		parsed, parseErr := time.ParseInLocation("2006-01-02", trimmed, handler.location)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		takenAt = parsed
	}

	entry, err := handler.memoryService.Create(access.profile.ID, user.ID, payload.Title, strings.TrimSpace(payload.PhotoKey), takenAt, strings.TrimSpace(payload.Notes))
	if err != nil {
		if errors.Is(err, services.ErrMemoryTitleMissing) {
			return apiError(c, fiber.StatusBadRequest, "memory title is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save memory")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"memory": entry})
}

func (handler *Handler) DeleteMemory(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "edit")
	if err != nil {
		return err
	}
	entryID, err := parseUintParam(c, "memoryID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid memory id")
	}

	if err := handler.memoryService.Delete(access.profile.ID, entryID); err != nil {
		if errors.Is(err, services.ErrMemoryNotFound) {
			return apiError(c, fiber.StatusNotFound, "memory entry not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete memory")
	}
	return c.JSON(fiber.Map{"ok": true})
}
