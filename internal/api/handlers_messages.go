package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/services"
)

func (handler *Handler) GetMessages(c *fiber.Ctx) error {
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	messages, err := handler.messageService.Thread(access.profile.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load messages")
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// PostMessage appends to the caregiver thread. Viewing access is enough:
// the thread is how viewers communicate with the caregivers.
func (handler *Handler) PostMessage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	access, err := handler.requireProfileCapability(c, "view")
	if err != nil {
		return err
	}

	payload := messagePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	message, err := handler.messageService.Post(access.profile.ID, user.ID, payload.Body)
	if err != nil {
		if errors.Is(err, services.ErrMessageBodyMissing) {
			return apiError(c, fiber.StatusBadRequest, "message body is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to post message")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}
