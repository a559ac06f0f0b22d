package handler

import (
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CanDoHandler handles Can-Do analysis and progress HTTP requests
type CanDoHandler struct {
	analysisService service.AnalysisService
	progressService service.ProgressService
	adminService    service.AdminService
	validator       *validation.Validator
}

// NewCanDoHandler creates a new CanDoHandler instance
func NewCanDoHandler(
	analysisService service.AnalysisService,
	progressService service.ProgressService,
	adminService service.AdminService,
	validator *validation.Validator,
) *CanDoHandler {
	return &CanDoHandler{
		analysisService: analysisService,
		progressService: progressService,
		adminService:    adminService,
		validator:       validator,
	}
}

// AnalyzeSession handles POST /analyze_session
func (h *CanDoHandler) AnalyzeSession(c *fiber.Ctx) error {
	var req dto.AnalyzeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateAnalyzeSessionRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.analysisService.AnalyzeSession(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Session analysis failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		return err
	}

	return c.JSON(resp)
}

// GetUserCanDo handles GET /users/:id/cando
func (h *CanDoHandler) GetUserCanDo(c *fiber.Ctx) error {
	userID := c.Params("id")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}

	resp, err := h.progressService.GetUserProgress(c.Context(), userID)
	if err != nil {
		logger.Get().Error("Failed to build progress view",
			zap.String("user_id", userID),
			zap.Error(err))
		return err
	}

	return c.JSON(resp)
}

// GrantCanDo handles POST /admin/users/:id/cando/:candoId
func (h *CanDoHandler) GrantCanDo(c *fiber.Ctx) error {
	userID := c.Params("id")
	candoID := c.Params("candoId")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}
	if errs := h.validator.ValidateCanDoID(candoID); len(errs) > 0 {
		return errs
	}

	achievement, err := h.adminService.GrantAchievement(c.Context(), userID, candoID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"cando_id": achievement.CanDoID,
		"source":   achievement.Source,
	})
}

// RevokeCanDo handles DELETE /admin/users/:id/cando/:candoId. The hard
// query flag deletes the record; the default disapproves it in place.
func (h *CanDoHandler) RevokeCanDo(c *fiber.Ctx) error {
	userID := c.Params("id")
	candoID := c.Params("candoId")
	if errs := h.validator.ValidateUserID(userID); len(errs) > 0 {
		return errs
	}
	if errs := h.validator.ValidateCanDoID(candoID); len(errs) > 0 {
		return errs
	}

	soft := c.Query("hard") != "true"
	if err := h.adminService.RevokeAchievement(c.Context(), userID, candoID, soft); err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
