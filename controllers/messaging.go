package controllers

import (
	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// MessagingController exposes parent SMS broadcasts and the manual fee
// reminder trigger.
type MessagingController struct {
	service *services.MessagingService
}

func NewMessagingController(service *services.MessagingService) *MessagingController {
	return &MessagingController{service: service}
}

func (mc *MessagingController) SendBroadcast(c *fiber.Ctx) error {
	var req services.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	sent, err := mc.service.SendBroadcastMessage(req)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "BROADCAST", "messaging", "", fiber.Map{"sent": sent})
	return c.JSON(fiber.Map{
		"message":      "Broadcast sent",
		"messagesSent": sent,
	})
}

// SendFeeReminders runs the reminder sweep on demand
func (mc *MessagingController) SendFeeReminders(c *fiber.Ctx) error {
	sent, err := mc.service.SendFeeReminders()
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "FEE_REMINDERS", "messaging", "", fiber.Map{"sent": sent})
	return c.JSON(fiber.Map{
		"message":       "Fee reminders sent",
		"remindersSent": sent,
	})
}
