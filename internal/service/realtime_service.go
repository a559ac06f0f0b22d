package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"go.uber.org/zap"
)

const defaultRealtimeBaseURL = "https://api.openai.com/v1"

// RealtimeService bootstraps OpenAI realtime voice sessions. The server
// only mints the ephemeral token; audio flows directly between the
// browser and OpenAI over WebRTC.
type RealtimeService interface {
	CreateSession(ctx context.Context, req *dto.RealtimeSessionRequest) (*dto.RealtimeSessionResponse, error)
}

type realtimeServiceImpl struct {
	apiKey     string
	model      string
	voice      string
	baseURL    string
	prompt     *TutorPrompt
	httpClient *http.Client
}

// NewRealtimeService creates a new RealtimeService.
func NewRealtimeService(cfg config.OpenAIConfig, prompt *TutorPrompt) RealtimeService {
	return &realtimeServiceImpl{
		apiKey:  cfg.APIKey,
		model:   cfg.RealtimeModel,
		voice:   cfg.RealtimeVoice,
		baseURL: defaultRealtimeBaseURL,
		prompt:  prompt,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type realtimeSessionBody struct {
	Model                   string                 `json:"model"`
	Voice                   string                 `json:"voice"`
	Modalities              []string               `json:"modalities"`
	Instructions            string                 `json:"instructions"`
	InputAudioFormat        string                 `json:"input_audio_format"`
	OutputAudioFormat       string                 `json:"output_audio_format"`
	InputAudioTranscription map[string]string      `json:"input_audio_transcription"`
	TurnDetection           map[string]interface{} `json:"turn_detection"`
}

func (s *realtimeServiceImpl) CreateSession(ctx context.Context, req *dto.RealtimeSessionRequest) (*dto.RealtimeSessionResponse, error) {
	instructions, err := s.prompt.InstructionsWithTopic(req.Topic)
	if err != nil {
		return nil, domain.NewInternalError("failed to build session instructions", err)
	}

	body := realtimeSessionBody{
		Model:             s.model,
		Voice:             s.voice,
		Modalities:        []string{"audio", "text"},
		Instructions:      instructions,
		InputAudioFormat:  "pcm16",
		OutputAudioFormat: "pcm16",
		InputAudioTranscription: map[string]string{
			"model": "whisper-1",
		},
		// Server-side voice activity detection tuned for conversational
		// turn-taking.
		TurnDetection: map[string]interface{}{
			"type":                "server_vad",
			"threshold":           0.5,
			"prefix_padding_ms":   300,
			"silence_duration_ms": 1000,
			"create_response":     true,
			"interrupt_response":  true,
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode session request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/realtime/sessions", bytes.NewReader(encoded))
	if err != nil {
		return nil, domain.NewInternalError("failed to build session request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewUpstreamError("realtime session create", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.NewUpstreamError("realtime session create: reading response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Get().Error("Realtime session create failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody[:min(len(respBody), 300)]))
		return nil, domain.NewUpstreamError(fmt.Sprintf("realtime session create: status %d", resp.StatusCode), nil)
	}

	var session struct {
		ID           string `json:"id"`
		ClientSecret struct {
			Value string `json:"value"`
		} `json:"client_secret"`
	}
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, domain.NewUpstreamError("realtime session create: malformed response", err)
	}
	if session.ID == "" {
		return nil, domain.NewUpstreamError("realtime session create: no session id in response", nil)
	}
	if session.ClientSecret.Value == "" {
		return nil, domain.NewUpstreamError("realtime session create: no ephemeral token in response", nil)
	}

	return &dto.RealtimeSessionResponse{
		SessionID:      session.ID,
		WebsocketURL:   fmt.Sprintf("wss://api.openai.com/v1/realtime?model=%s", s.model),
		EphemeralToken: session.ClientSecret.Value,
	}, nil
}
