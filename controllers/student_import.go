package controllers

import (
	"classtrack_go/middleware"
	"classtrack_go/services"

	"github.com/gofiber/fiber/v2"
)

// StudentImportController handles bulk imports and template downloads
type StudentImportController struct {
	service *services.ImportService
}

func NewStudentImportController(service *services.ImportService) *StudentImportController {
	return &StudentImportController{service: service}
}

// ImportStudents accepts a CSV or Excel upload under the "file" form field.
// The response is always 200: per-row failures are reported in the body.
func (sic *StudentImportController) ImportStudents(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file upload under field 'file'"})
	}

	result, err := sic.service.ImportStudents(file)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "IMPORT", "student", file.Filename, fiber.Map{
		"total":      result.TotalRows,
		"successful": result.SuccessfulImports,
		"failed":     result.FailedImports,
	})
	return c.JSON(result)
}

// DownloadCsvTemplate serves a ready-to-fill CSV import template
func (sic *StudentImportController) DownloadCsvTemplate(c *fiber.Ctx) error {
	data, err := sic.service.GenerateCsvTemplate()
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="student_import_template.csv"`)
	return c.Send(data)
}

// DownloadExcelTemplate serves the same template as an .xlsx workbook
func (sic *StudentImportController) DownloadExcelTemplate(c *fiber.Ctx) error {
	data, err := sic.service.GenerateExcelTemplate()
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="student_import_template.xlsx"`)
	return c.Send(data)
}
