package service

import (
	"encoding/json"
	"fmt"
	"os"

	"lingua-tutor/internal/dto"
)

// TutorPrompt is the tutor persona loaded from prompt.json. The whole
// document is serialized as the system message so text chat and the
// realtime voice session behave consistently.
type TutorPrompt struct {
	data map[string]interface{}
}

// LoadTutorPrompt reads and parses the prompt file.
func LoadTutorPrompt(path string) (*TutorPrompt, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", path, err)
	}
	return &TutorPrompt{data: data}, nil
}

// Instructions serializes the prompt document for use as a system message.
func (p *TutorPrompt) Instructions() (string, error) {
	encoded, err := json.Marshal(p.data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize prompt: %w", err)
	}
	return string(encoded), nil
}

// InstructionsWithTopic serializes the prompt with a conversation topic
// injected under behavior.current_topic, so the tutor opens the session
// around it. The loaded document is never mutated.
func (p *TutorPrompt) InstructionsWithTopic(topic *dto.SessionTopic) (string, error) {
	if topic == nil {
		return p.Instructions()
	}

	// Round-trip through JSON for a deep copy.
	encoded, err := json.Marshal(p.data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize prompt: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(encoded, &data); err != nil {
		return "", fmt.Errorf("failed to copy prompt: %w", err)
	}

	behavior, ok := data["behavior"].(map[string]interface{})
	if !ok {
		behavior = map[string]interface{}{}
		data["behavior"] = behavior
	}
	behavior["current_topic"] = map[string]interface{}{
		"title":        topic.Title,
		"description":  topic.Description,
		"instructions": "Please start the conversation by introducing this topic and engaging the user in a natural, friendly way, always in English.",
	}

	withTopic, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize prompt with topic: %w", err)
	}
	return string(withTopic), nil
}
