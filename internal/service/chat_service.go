package service

import (
	"context"
	"strings"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// chatModel is the slice of the langchaingo client the chat service
// needs; tests substitute a fake.
type chatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// ChatService answers text-chat turns with the tutor persona. The
// conversation context travels with each request; nothing is kept
// between calls, so any instance can serve any turn.
type ChatService interface {
	Chat(ctx context.Context, req *dto.ChatTextRequest) (*dto.ChatTextResponse, error)
}

type chatServiceImpl struct {
	llm    chatModel
	prompt *TutorPrompt
}

// NewChatService creates a new ChatService.
func NewChatService(llm chatModel, prompt *TutorPrompt) ChatService {
	return &chatServiceImpl{llm: llm, prompt: prompt}
}

func (s *chatServiceImpl) Chat(ctx context.Context, req *dto.ChatTextRequest) (*dto.ChatTextResponse, error) {
	instructions, err := s.prompt.Instructions()
	if err != nil {
		return nil, domain.NewInternalError("failed to build system prompt", err)
	}

	messages := make([]llms.MessageContent, 0, len(req.Context)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, instructions))
	for _, msg := range req.Context {
		role := llms.ChatMessageTypeHuman
		if msg.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Text))

	resp, err := s.llm.GenerateContent(ctx, messages)
	if err != nil {
		logger.Get().Error("Chat completion failed", zap.Error(err))
		return nil, domain.NewUpstreamError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewUpstreamError("chat completion returned no choices", nil)
	}

	answer := strings.TrimSpace(resp.Choices[0].Content)

	updatedContext := append(req.Context,
		dto.ChatMessage{Role: "user", Content: req.Text},
		dto.ChatMessage{Role: "assistant", Content: answer},
	)

	return &dto.ChatTextResponse{
		ResponseText: answer,
		Context:      updatedContext,
	}, nil
}
