package controllers

import (
	"strconv"

	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionController administers attendance sessions
type SessionController struct {
	service *services.SessionService
}

func NewSessionController(service *services.SessionService) *SessionController {
	return &SessionController{service: service}
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	admin, err := middleware.GetCurrentAdmin(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin not found in context"})
	}

	var req services.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	session, err := sc.service.CreateSession(req, admin.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "attendance_session", strconv.Itoa(int(session.ID)), session)
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (sc *SessionController) GetActiveSessions(c *fiber.Ctx) error {
	sessions, err := sc.service.GetActiveSessions()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sessions)
}

func (sc *SessionController) GetTodaysActiveSessions(c *fiber.Ctx) error {
	sessions, err := sc.service.GetTodaysActiveSessions()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sessions)
}

func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := sc.service.GetActiveSessionByID(sessionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(session)
}

func (sc *SessionController) DeactivateSession(c *fiber.Ctx) error {
	sessionID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if err := sc.service.DeactivateSession(sessionID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DEACTIVATE", "attendance_session", strconv.Itoa(int(sessionID)), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
