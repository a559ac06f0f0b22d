package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingua-tutor/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRealtimeService(server *httptest.Server) *realtimeServiceImpl {
	return &realtimeServiceImpl{
		apiKey:     "sk-test",
		model:      "gpt-4o-realtime-preview",
		voice:      "alloy",
		baseURL:    server.URL,
		prompt:     &TutorPrompt{data: map[string]interface{}{"identity": "tutor"}},
		httpClient: server.Client(),
	}
}

func TestCreateSession(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/realtime/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess_abc","client_secret":{"value":"ek_test_123"}}`))
	}))
	defer server.Close()

	svc := newRealtimeService(server)
	resp, err := svc.CreateSession(context.Background(), &dto.RealtimeSessionRequest{})

	require.NoError(t, err)
	assert.Equal(t, "sess_abc", resp.SessionID)
	assert.Equal(t, "ek_test_123", resp.EphemeralToken)
	assert.Contains(t, resp.WebsocketURL, "wss://api.openai.com/v1/realtime?model=gpt-4o-realtime-preview")

	assert.Equal(t, "gpt-4o-realtime-preview", captured["model"])
	assert.Equal(t, "alloy", captured["voice"])
	assert.Equal(t, "pcm16", captured["input_audio_format"])
	turnDetection := captured["turn_detection"].(map[string]interface{})
	assert.Equal(t, "server_vad", turnDetection["type"])
}

func TestCreateSession_InjectsTopic(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"id":"sess_abc","client_secret":{"value":"ek"}}`))
	}))
	defer server.Close()

	svc := newRealtimeService(server)
	_, err := svc.CreateSession(context.Background(), &dto.RealtimeSessionRequest{
		Topic: &dto.SessionTopic{Title: "Ordering coffee"},
	})

	require.NoError(t, err)
	instructions := captured["instructions"].(string)
	assert.Contains(t, instructions, "Ordering coffee")
}

func TestCreateSession_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_api_key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := newRealtimeService(server)
	_, err := svc.CreateSession(context.Background(), &dto.RealtimeSessionRequest{})

	require.Error(t, err)
}

func TestCreateSession_MissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"sess_abc","client_secret":{}}`))
	}))
	defer server.Close()

	svc := newRealtimeService(server)
	_, err := svc.CreateSession(context.Background(), &dto.RealtimeSessionRequest{})

	require.Error(t, err)
}
