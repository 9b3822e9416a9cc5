package controllers

import (
	"context"
	"strings"
	"time"

	"classtrack_go/database"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthController struct{}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Login authenticates an admin and returns a JWT token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	var admin models.Admin
	err := database.DB.Preload("Role").
		Where("username = ?", req.Username).First(&admin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return respondServiceError(c, err)
	}

	if err := utils.CheckPassword(req.Password, admin.Password); err != nil {
		logrus.WithField("username", req.Username).Warn("Failed login attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := middleware.GenerateToken(&admin)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "LOGIN", "auth", admin.Username, fiber.Map{"username": admin.Username})

	return c.JSON(fiber.Map{
		"token": token,
		"admin": fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role.Name,
		},
	})
}

// GetProfile returns the authenticated admin
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	admin, err := middleware.GetCurrentAdmin(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin not found in context"})
	}
	return c.JSON(fiber.Map{
		"id":       admin.ID,
		"username": admin.Username,
		"role":     admin.Role.Name,
	})
}

// ChangePassword verifies the current password before setting the new one
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	admin, err := middleware.GetCurrentAdmin(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin not found in context"})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fieldErrors := utils.ValidateStruct(req); fieldErrors != nil {
		return respondValidationErrors(c, fieldErrors)
	}

	if err := utils.CheckPassword(req.CurrentPassword, admin.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := database.DB.Model(admin).Update("password", hashed).Error; err != nil {
		return respondServiceError(c, err)
	}

	middleware.LogActivity(c, "CHANGE_PASSWORD", "auth", admin.Username, nil)
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// Logout blacklists the presented JWT until its natural expiry window ends
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing authorization header"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	if rc := database.GetRedisClient(); rc != nil {
		key := "blacklist:jwt:" + tokenString
		if err := rc.Set(context.Background(), key, "1", 24*time.Hour).Err(); err != nil {
			logrus.WithError(err).Warn("Failed to blacklist token, logout proceeds anyway")
		}
	}

	if admin, err := middleware.GetCurrentAdmin(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", admin.Username, fiber.Map{"username": admin.Username})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
