package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	status, err := handler.subscriptionService.Status(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load subscription")
	}
	return c.JSON(fiber.Map{"subscription": status})
}

// UpdateSubscription records a plan change reported by the payment
// provider callback on the client.
func (handler *Handler) UpdateSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := planPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	var expiresAt *time.Time
	if trimmed := strings.TrimSpace(payload.ExpiresAt); trimmed != "" {
		parsed, parseErr := time.Parse(time.RFC3339, trimmed)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid expiry")
		}
		expiresAt = &parsed
	}

	if err := handler.subscriptionService.SetPlan(user.ID, strings.TrimSpace(payload.Tier), expiresAt); err != nil {
		if errors.Is(err, services.ErrInvalidPlanTier) {
			return apiError(c, fiber.StatusBadRequest, "invalid plan tier")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update subscription")
	}

	status, err := handler.subscriptionService.Status(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load subscription")
	}
	return c.JSON(fiber.Map{"subscription": status})
}
