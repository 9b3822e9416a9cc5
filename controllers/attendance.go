package controllers

import (
	"time"

	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceController exposes the kiosk check-in endpoints and the daily
// attendance report.
type AttendanceController struct {
	service *services.AttendanceService
}

func NewAttendanceController(service *services.AttendanceService) *AttendanceController {
	return &AttendanceController{service: service}
}

// MarkAttendance is the unauthenticated kiosk check-in by student ID code
func (ac *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req services.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	if _, err := ac.service.MarkAttendance(req); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// MarkAttendanceByIndex is the session-mode kiosk check-in by index number
func (ac *AttendanceController) MarkAttendanceByIndex(c *fiber.Ctx) error {
	var req services.MarkAttendanceByIndexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	message, err := ac.service.MarkAttendanceByIndex(req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// GetAttendanceReport returns present/absent students for a date, batch and
// subject. Date defaults to today (UTC) when omitted.
func (ac *AttendanceController) GetAttendanceReport(c *fiber.Ctx) error {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	batchID, err := parseUintQuery(c, "batchId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or missing batchId"})
	}
	subjectID, err := parseUintQuery(c, "subjectId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or missing subjectId"})
	}

	report, err := ac.service.GetAttendanceReport(date, batchID, subjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}
