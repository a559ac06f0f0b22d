package handler

import (
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/service"
	"lingua-tutor/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler handles tutor conversation HTTP requests
type ChatHandler struct {
	chatService     service.ChatService
	realtimeService service.RealtimeService
	validator       *validation.Validator
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(
	chatService service.ChatService,
	realtimeService service.RealtimeService,
	validator *validation.Validator,
) *ChatHandler {
	return &ChatHandler{
		chatService:     chatService,
		realtimeService: realtimeService,
		validator:       validator,
	}
}

// ChatText handles POST /chat_text
func (h *ChatHandler) ChatText(c *fiber.Ctx) error {
	var req dto.ChatTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := h.validator.ValidateChatTextRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.chatService.Chat(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Text chat turn failed", zap.Error(err))
		return err
	}

	return c.JSON(resp)
}

// CreateRealtimeSession handles POST /webrtc_session. An empty body is
// allowed; the topic is optional.
func (h *ChatHandler) CreateRealtimeSession(c *fiber.Ctx) error {
	var req dto.RealtimeSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	resp, err := h.realtimeService.CreateSession(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Realtime session bootstrap failed", zap.Error(err))
		return err
	}

	return c.JSON(resp)
}
