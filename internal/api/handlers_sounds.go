package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetSoundCatalog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	presets, err := handler.soundService.Catalog(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sound catalog")
	}
	return c.JSON(fiber.Map{"presets": presets})
}

func (handler *Handler) SetSoundFavorite(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	presetID, err := parseUintParam(c, "presetID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid preset id")
	}

	payload := favoritePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.soundService.SetFavorite(user.ID, presetID, payload.Favorite); err != nil {
		if errors.Is(err, services.ErrSoundPresetNotFound) {
			return apiError(c, fiber.StatusNotFound, "sound preset not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update favorite")
	}
	return c.JSON(fiber.Map{"ok": true})
}
