package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetDailySummary serves the aggregated day summary, answering from the
// per-session cache when the active profile has not changed since the last
// computation.
func (handler *Handler) GetDailySummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	day := time.Now().In(handler.location)
	if dayRaw := strings.TrimSpace(c.Query("day")); dayRaw != "" {
		parsed, parseErr := time.ParseInLocation("2006-01-02", dayRaw, handler.location)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid day")
		}
		day = parsed
	}
	dayKey := day.Format("2006-01-02")

	session, sessionErr := handler.sessions.Session(user.ID)
	if sessionErr != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load session")
	}
	cache := handler.statsCacheFor(user.ID, session)

	if summary, hit := cache.Get(access.profile.ID, dayKey); hit {
		return c.JSON(fiber.Map{"summary": summary, "cached": true})
	}

	summary, err := handler.statsService.DailySummary(access.profile.ID, day, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute summary")
	}
	cache.Prime(access.profile.ID)
	cache.Put(access.profile.ID, summary)

	return c.JSON(fiber.Map{"summary": summary, "cached": false})
}
