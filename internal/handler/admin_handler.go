package handler

import (
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler handles admin user management HTTP requests
type AdminHandler struct {
	adminService service.AdminService
	validator    *validation.Validator
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(adminService service.AdminService, validator *validation.Validator) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.adminService.ListUsers(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list users", zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateCreateUserRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.adminService.CreateUser(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to create user",
			zap.String("email", req.Email),
			zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}

	if err := h.adminService.DeleteUser(c.Context(), userID); err != nil {
		logger.Get().Error("Failed to delete user",
			zap.String("user_id", userID),
			zap.Error(err))
		return err
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}

// ResetPassword handles POST /admin/users/:id/reset-password
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	userID := c.Params("id")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateResetPasswordRequest(&req); len(errs) > 0 {
		return errs
	}

	if err := h.adminService.ResetPassword(c.Context(), userID, req.Password); err != nil {
		logger.Get().Error("Failed to reset password",
			zap.String("user_id", userID),
			zap.Error(err))
		return err
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
