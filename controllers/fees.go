package controllers

import (
	"strconv"

	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// FeeController exposes fee record administration
type FeeController struct {
	service *services.FeeService
}

func NewFeeController(service *services.FeeService) *FeeController {
	return &FeeController{service: service}
}

func (fc *FeeController) CreateFeeRecord(c *fiber.Ctx) error {
	var req services.CreateFeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	record, err := fc.service.CreateFeeRecord(req)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "fee_record", strconv.Itoa(int(record.ID)), record)
	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdatePayment overwrites the paid amount on a fee record
func (fc *FeeController) UpdatePayment(c *fiber.Ctx) error {
	feeID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fee record ID"})
	}

	var req services.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	record, err := fc.service.UpdatePayment(feeID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "fee_record", strconv.Itoa(int(feeID)), record)
	return c.JSON(record)
}

func (fc *FeeController) GetFeesForStudent(c *fiber.Ctx) error {
	records, err := fc.service.GetFeesForStudent(c.Params("studentId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}
