package controllers

import (
	"strconv"

	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// InstituteController exposes batch and subject administration
type InstituteController struct {
	service *services.InstituteService
}

func NewInstituteController(service *services.InstituteService) *InstituteController {
	return &InstituteController{service: service}
}

type BatchRequest struct {
	BatchYear int `json:"batchYear" validate:"required,min=2000,max=2100"`
}

type SubjectRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (ic *InstituteController) CreateBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	batch, err := ic.service.CreateBatch(req.BatchYear)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "batch", strconv.Itoa(int(batch.ID)), batch)
	return c.Status(fiber.StatusCreated).JSON(batch)
}

func (ic *InstituteController) GetBatches(c *fiber.Ctx) error {
	batches, err := ic.service.GetAllBatches()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(batches)
}

func (ic *InstituteController) UpdateBatch(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	batch, err := ic.service.UpdateBatch(batchID, req.BatchYear)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "batch", strconv.Itoa(int(batchID)), batch)
	return c.JSON(batch)
}

func (ic *InstituteController) DeleteBatch(c *fiber.Ctx) error {
	batchID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch ID"})
	}

	if err := ic.service.DeleteBatch(batchID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "batch", strconv.Itoa(int(batchID)), nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (ic *InstituteController) CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	subject, err := ic.service.CreateSubject(req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "subject", strconv.Itoa(int(subject.ID)), subject)
	return c.Status(fiber.StatusCreated).JSON(subject)
}

func (ic *InstituteController) GetSubjects(c *fiber.Ctx) error {
	subjects, err := ic.service.GetAllSubjects()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subjects)
}

func (ic *InstituteController) UpdateSubject(c *fiber.Ctx) error {
	subjectID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	subject, err := ic.service.UpdateSubject(subjectID, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "subject", strconv.Itoa(int(subjectID)), subject)
	return c.JSON(subject)
}

func (ic *InstituteController) DeleteSubject(c *fiber.Ctx) error {
	subjectID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	if err := ic.service.DeleteSubject(subjectID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "subject", strconv.Itoa(int(subjectID)), nil)
	return c.SendStatus(fiber.StatusNoContent)
}
