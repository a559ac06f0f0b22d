package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func testStatements() []domain.CanDoStatement {
	return []domain.CanDoStatement{
		{ID: "cd-1", Level: "B1", SkillType: "speaking", Descriptor: "Can describe experiences and events."},
		{ID: "cd-2", Level: "B2", SkillType: "speaking", Descriptor: "Can present clear, detailed descriptions."},
	}
}

func newTestClassifier(llm llmCaller) *OpenAIClassifier {
	return &OpenAIClassifier{llm: llm, modelName: "gpt-4o-mini", timeout: 5 * time.Second}
}

const validPayload = `{"detected_achievements": [{"cando_id": "cd-1", "confidence": 0.85, "evidence": "I went to Lisbon last summer"}]}`

func TestClassify_PlainJSONResponse(t *testing.T) {
	c := newTestClassifier(&fakeLLM{response: validPayload})

	result, err := c.Classify(context.Background(), "I went to Lisbon last summer", testStatements(), "B1")

	require.NoError(t, err)
	assert.False(t, result.Failed)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, "cd-1", result.Detections[0].CanDoID)
	assert.Equal(t, 0.85, result.Detections[0].Confidence)
	assert.Equal(t, "I went to Lisbon last summer", result.Detections[0].Evidence)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, PromptVersion, result.PromptVersion)
}

func TestClassify_FencedResponseParsesIdentically(t *testing.T) {
	plain := newTestClassifier(&fakeLLM{response: validPayload})
	fenced := newTestClassifier(&fakeLLM{response: "Here is my assessment:\n```json\n" + validPayload + "\n```\nHope that helps!"})

	plainResult, err := plain.Classify(context.Background(), "transcript", testStatements(), "B1")
	require.NoError(t, err)
	fencedResult, err := fenced.Classify(context.Background(), "transcript", testStatements(), "B1")
	require.NoError(t, err)

	assert.Equal(t, plainResult.Detections, fencedResult.Detections)
	assert.False(t, fencedResult.Failed)
}

func TestClassify_JSONEmbeddedInProse(t *testing.T) {
	c := newTestClassifier(&fakeLLM{
		response: "Based on the transcript, I found the following: " + validPayload + " Let me know if you need more detail.",
	})

	result, err := c.Classify(context.Background(), "transcript", testStatements(), "B1")

	require.NoError(t, err)
	assert.False(t, result.Failed)
	require.Len(t, result.Detections, 1)
	assert.Equal(t, "cd-1", result.Detections[0].CanDoID)
}

func TestClassify_UnparseableResponseFailsSoftly(t *testing.T) {
	c := newTestClassifier(&fakeLLM{response: "I could not find any achievements, sorry!"})

	result, err := c.Classify(context.Background(), "transcript", testStatements(), "B1")

	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.NotEmpty(t, result.FailureReason)
	assert.Empty(t, result.Detections)
}

func TestClassify_CallErrorFailsSoftly(t *testing.T) {
	c := newTestClassifier(&fakeLLM{err: errors.New("connection refused")})

	result, err := c.Classify(context.Background(), "transcript", testStatements(), "B1")

	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Contains(t, result.FailureReason, "model call failed")
	assert.Empty(t, result.Detections)
}

func TestClassify_EmptyTranscriptFailsSoftly(t *testing.T) {
	llm := &fakeLLM{response: validPayload}
	c := newTestClassifier(llm)

	result, err := c.Classify(context.Background(), "   ", testStatements(), "B1")

	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Empty(t, llm.prompt, "model must not be called for an empty transcript")
	_ = result
}

func TestClassify_PromptContainsCatalogAndLevel(t *testing.T) {
	llm := &fakeLLM{response: `{"detected_achievements": []}`}
	c := newTestClassifier(llm)

	_, err := c.Classify(context.Background(), "my transcript text", testStatements(), "B1")

	require.NoError(t, err)
	assert.Contains(t, llm.prompt, "cd-1")
	assert.Contains(t, llm.prompt, "Can present clear, detailed descriptions.")
	assert.Contains(t, llm.prompt, "Learner level: B1")
	assert.Contains(t, llm.prompt, "my transcript text")
}

func TestExtractPayload(t *testing.T) {
	type payload struct {
		DetectedAchievements []domain.Detection `json:"detected_achievements"`
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"direct object", validPayload, false},
		{"fenced without language tag", "```\n" + validPayload + "\n```", false},
		{"fenced with json tag", "```json\n" + validPayload + "\n```", false},
		{"embedded in prose", "prefix " + validPayload + " suffix", false},
		{"braces inside evidence string", `{"detected_achievements": [{"cando_id": "cd-1", "confidence": 0.7, "evidence": "I said {hello} there"}]}`, false},
		{"empty string", "", true},
		{"prose only", "no achievements detected", true},
		{"unbalanced braces", `{"detected_achievements": [`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := extractPayload(tt.raw, &p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
