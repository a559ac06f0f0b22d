package dto

// ChatMessage is one turn of the conversation context. The caller holds
// and resends the full history; the server keeps no conversation state.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatTextRequest is the body of POST /chat_text.
type ChatTextRequest struct {
	Text    string        `json:"text"`
	Context []ChatMessage `json:"context,omitempty"`
}

// ChatTextResponse carries the assistant's reply. Context echoes the
// updated history so the caller can resend it on the next turn.
type ChatTextResponse struct {
	ResponseText string        `json:"response_text"`
	Context      []ChatMessage `json:"context"`
}

// SessionTopic optionally seeds the voice session with a conversation topic.
type SessionTopic struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// RealtimeSessionRequest is the body of POST /webrtc_session.
type RealtimeSessionRequest struct {
	Topic *SessionTopic `json:"topic,omitempty"`
}

// RealtimeSessionResponse hands the front-end what it needs to open the
// WebRTC voice session directly against OpenAI.
type RealtimeSessionResponse struct {
	SessionID      string `json:"session_id"`
	WebsocketURL   string `json:"websocket_url"`
	EphemeralToken string `json:"ephemeral_token"`
}
