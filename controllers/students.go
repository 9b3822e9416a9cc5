package controllers

import (
	"strconv"

	"classtrack_go/middleware"
	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

// StudentController exposes student CRUD and roster queries
type StudentController struct {
	service *services.StudentService
}

func NewStudentController(service *services.StudentService) *StudentController {
	return &StudentController{service: service}
}

func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req services.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	student, err := sc.service.CreateStudent(req)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "student", student.ID, student)
	return c.Status(fiber.StatusCreated).JSON(student)
}

func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	student, err := sc.service.GetStudentByID(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(student)
}

// GetStudents lists active students, filterable by batchId and/or subjectId
// query parameters.
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	var batchID, subjectID *uint
	if raw := c.Query("batchId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batchId"})
		}
		id := uint(parsed)
		batchID = &id
	}
	if raw := c.Query("subjectId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subjectId"})
		}
		id := uint(parsed)
		subjectID = &id
	}

	students, err := sc.service.GetFilteredStudents(batchID, subjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(students)
}

func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	var req services.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	student, err := sc.service.UpdateStudent(c.Params("id"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "UPDATE", "student", student.ID, student)
	return c.JSON(student)
}

func (sc *StudentController) DeactivateStudent(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if err := sc.service.DeactivateStudent(studentID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DEACTIVATE", "student", studentID, nil)
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if err := sc.service.DeleteStudent(studentID); err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "student", studentID, nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetNextStudentID previews the next generated student ID code
func (sc *StudentController) GetNextStudentID(c *fiber.Ctx) error {
	code, err := sc.service.GetNextStudentIDCode()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"nextStudentId": code})
}
