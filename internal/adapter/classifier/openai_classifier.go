package classifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/logger"

	"github.com/tmc/langchaingo/llms"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// PromptVersion is recorded in analysis logs so stored detections can be
// traced back to the prompt that produced them.
const PromptVersion = "cando-classifier/v1"

// llmCaller is the slice of the langchaingo client the classifier needs;
// tests substitute a fake.
type llmCaller interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// OpenAIClassifier implements domain.TranscriptClassifier against the
// OpenAI chat API through langchaingo.
type OpenAIClassifier struct {
	llm       llmCaller
	modelName string
	timeout   time.Duration
}

// NewOpenAIClassifier builds a classifier from the application config.
func NewOpenAIClassifier(cfg config.OpenAIConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	llm, err := openaiLLM.New(
		openaiLLM.WithToken(cfg.APIKey),
		openaiLLM.WithModel(cfg.ClassifierModel),
		openaiLLM.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClassifier{
		llm:       llm,
		modelName: cfg.ClassifierModel,
		timeout:   cfg.Timeout,
	}, nil
}

type classifierResponse struct {
	DetectedAchievements []domain.Detection `json:"detected_achievements"`
}

// Classify sends the transcript and the windowed descriptor subset to the
// model and extracts detections from its response. Call and parse
// failures are absorbed into a failed result; this boundary never lets a
// classification error abort the enclosing request.
func (c *OpenAIClassifier) Classify(ctx context.Context, transcript string, statements []domain.CanDoStatement, userLevel string) (*domain.ClassificationResult, error) {
	l := logger.Get()

	result := &domain.ClassificationResult{
		Model:         c.modelName,
		PromptVersion: PromptVersion,
	}

	if strings.TrimSpace(transcript) == "" || len(statements) == 0 {
		result.Failed = true
		result.FailureReason = "nothing to classify: empty transcript or descriptor set"
		return result, nil
	}

	prompt := c.buildPrompt(transcript, statements, userLevel)

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.llm.Call(callCtx, prompt, llms.WithTemperature(0.1))
	if err != nil {
		// A timed-out or failed call is a failed analysis, not a partial one.
		l.Error("Classification call failed",
			zap.Error(err),
			zap.String("model", c.modelName),
			zap.Int("transcript_length", len(transcript)))
		result.Failed = true
		result.FailureReason = fmt.Sprintf("model call failed: %v", err)
		return result, nil
	}

	var parsed classifierResponse
	if err := extractPayload(raw, &parsed); err != nil {
		l.Error("Failed to extract detections from model response",
			zap.Error(err),
			zap.String("raw_response", truncate(raw, 500)))
		result.Failed = true
		result.FailureReason = err.Error()
		return result, nil
	}

	result.Detections = parsed.DetectedAchievements
	l.Info("Classification completed",
		zap.String("model", c.modelName),
		zap.Int("detections", len(result.Detections)))
	return result, nil
}

func (c *OpenAIClassifier) buildPrompt(transcript string, statements []domain.CanDoStatement, userLevel string) string {
	var catalog strings.Builder
	for _, stmt := range statements {
		fmt.Fprintf(&catalog, "- id: %s | level: %s | skill: %s | %s\n",
			stmt.ID, stmt.Level, stmt.SkillType, stmt.Descriptor)
	}

	return fmt.Sprintf(`You are a CEFR proficiency assessor for an English tutoring app.
Below is the transcript of a learner's conversation session, followed by a catalog of CEFR Can-Do statements.

Identify which Can-Do statements the learner ACTIVELY DEMONSTRATED in this transcript. Count only productive evidence: the learner themselves speaking or writing in a way that shows the capability. Understanding or passively receiving language does not count. The learner's assigned level is %s, but learners can legitimately perform above their assigned level, so judge every statement in the catalog on the evidence alone.

Respond with ONLY a JSON object in the following format:
{
    "detected_achievements": [
        {"cando_id": "...", "confidence": 0.0, "evidence": "short quote from the transcript"}
    ]
}

Rules:
1. Only include statements with clear productive evidence in the transcript.
2. Confidence must be between 0.6 and 1.0; omit anything you are less sure about.
3. Evidence must be a short verbatim excerpt from the learner's own utterances.
4. If nothing qualifies, return {"detected_achievements": []}.

Learner level: %s

Can-Do catalog:
%s
Transcript:
%s`, userLevel, userLevel, catalog.String(), transcript)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ domain.TranscriptClassifier = (*OpenAIClassifier)(nil)
