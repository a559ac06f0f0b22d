package domain

import "context"

// ConfidenceFloor is the minimum confidence a detection may carry. A
// conforming classifier never reports lower, but the recorder filters
// below-floor detections regardless.
const ConfidenceFloor = 0.6

// Detection is one descriptor the classifier judged the learner to have
// actively demonstrated in a transcript.
type Detection struct {
	CanDoID    string  `json:"cando_id"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
}

// ClassificationResult is the outcome of a single classification call.
// Parse and transport failures are absorbed into the result (Failed +
// FailureReason) instead of propagating: a broken model response must
// never abort the enclosing analysis request.
type ClassificationResult struct {
	Detections    []Detection
	Model         string
	PromptVersion string
	Failed        bool
	FailureReason string
}

// TranscriptClassifier sends a transcript plus a windowed descriptor
// subset to a language model and extracts structured detections from its
// response. Classification of the same transcript is not guaranteed
// repeatable across calls.
type TranscriptClassifier interface {
	Classify(ctx context.Context, transcript string, statements []CanDoStatement, userLevel string) (*ClassificationResult, error)
}
