package controllers

import (
	"errors"
	"strconv"
	"strings"

	"classtrack_go/services"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": serviceMessage(err)})
	case errors.Is(err, services.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": serviceMessage(err)})
	case errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": serviceMessage(err)})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": serviceMessage(err)})
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.Path(),
			"error": err.Error(),
		}).Error("Unhandled service error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

// serviceMessage strips the wrapped sentinel suffix from a service error so
// responses read "student not found with ID X" rather than
// "student not found with ID X: resource not found".
func serviceMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{services.ErrNotFound, services.ErrDuplicate, services.ErrInvalidState, services.ErrValidation} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}

// respondValidationErrors renders struct validation failures as a 400 with
// per-field details.
func respondValidationErrors(c *fiber.Ctx, fieldErrors []utils.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": fieldErrors,
	})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := c.ParamsInt(name)
	if err != nil || value < 1 {
		return 0, errors.New("invalid " + name)
	}
	return uint(value), nil
}

func parseUintQuery(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || value < 1 {
		return 0, errors.New("invalid " + name)
	}
	return uint(value), nil
}
