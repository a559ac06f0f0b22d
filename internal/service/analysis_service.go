package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"go.uber.org/zap"
)

// auditTimeout bounds the fire-and-forget audit append after the
// response has already been produced.
const auditTimeout = 10 * time.Second

// AnalysisService runs the Can-Do detection pipeline for one session
// transcript: select the level window, fetch the descriptor subset,
// classify, record the new achievements, and audit the invocation.
type AnalysisService interface {
	AnalyzeSession(ctx context.Context, req *dto.AnalyzeSessionRequest) (*dto.AnalyzeSessionResponse, error)
}

type analysisServiceImpl struct {
	candoRepo       domain.CanDoRepository
	achievementRepo domain.AchievementRepository
	logRepo         domain.AnalysisLogRepository
	profileRepo     domain.ProfileRepository
	classifier      domain.TranscriptClassifier
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	candoRepo domain.CanDoRepository,
	achievementRepo domain.AchievementRepository,
	logRepo domain.AnalysisLogRepository,
	profileRepo domain.ProfileRepository,
	classifier domain.TranscriptClassifier,
) AnalysisService {
	return &analysisServiceImpl{
		candoRepo:       candoRepo,
		achievementRepo: achievementRepo,
		logRepo:         logRepo,
		profileRepo:     profileRepo,
		classifier:      classifier,
	}
}

func (s *analysisServiceImpl) AnalyzeSession(ctx context.Context, req *dto.AnalyzeSessionRequest) (*dto.AnalyzeSessionResponse, error) {
	l := logger.Get()
	start := time.Now()

	level := s.resolveLevel(ctx, req)
	window := domain.WindowLevels(level)

	statements, err := s.candoRepo.ListByLevels(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptor catalog: %w", err)
	}

	result, err := s.classifier.Classify(ctx, req.Transcript, statements, level)
	if err != nil {
		// The classifier contract absorbs its own failures, but treat a
		// returned error the same way: failed analysis, not an abort.
		result = &domain.ClassificationResult{Failed: true, FailureReason: err.Error()}
	}

	var newAchievements []domain.Achievement
	if !result.Failed {
		newAchievements, err = s.recordDetections(ctx, req, result.Detections)
		if err != nil {
			return nil, err
		}
	}

	processingMs := time.Since(start).Milliseconds()
	s.appendAuditLog(req, result, processingMs)

	l.Info("Session analysis completed",
		zap.String("session_id", req.SessionID),
		zap.String("user_id", req.UserID),
		zap.String("user_level", level),
		zap.Int("detections", len(result.Detections)),
		zap.Int("new_achievements", len(newAchievements)),
		zap.Bool("failed", result.Failed),
		zap.Int64("processing_ms", processingMs))

	return buildAnalyzeResponse(req.SessionID, level, result, newAchievements, processingMs), nil
}

// resolveLevel prefers the level in the request, falls back to the
// learner's profile, and lets the window selector default anything else.
func (s *analysisServiceImpl) resolveLevel(ctx context.Context, req *dto.AnalyzeSessionRequest) string {
	if level := domain.NormalizeLevel(req.UserLevel); domain.IsValidLevel(level) {
		return level
	}
	if profile, err := s.profileRepo.GetByID(ctx, req.UserID); err == nil && profile != nil {
		if level := domain.NormalizeLevel(profile.EnglishLevel); domain.IsValidLevel(level) {
			return level
		}
	}
	return domain.DefaultLevel
}

// recordDetections applies the confidence floor and the existence check,
// then inserts what is genuinely new. The check-then-insert pair is not
// transactional; a concurrent duplicate is caught by the storage layer's
// conditional insert and treated as an ordinary skip.
func (s *analysisServiceImpl) recordDetections(ctx context.Context, req *dto.AnalyzeSessionRequest, detections []domain.Detection) ([]domain.Achievement, error) {
	l := logger.Get()
	var created []domain.Achievement

	for _, detection := range detections {
		if detection.Confidence < domain.ConfidenceFloor {
			l.Debug("Skipping low-confidence detection",
				zap.String("cando_id", detection.CanDoID),
				zap.Float64("confidence", detection.Confidence))
			continue
		}

		existing, err := s.achievementRepo.Find(ctx, req.UserID, detection.CanDoID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing achievement: %w", err)
		}
		if existing != nil {
			continue
		}

		achievement := domain.NewAutomaticAchievement(
			req.UserID, detection.CanDoID, req.SessionID, detection.Evidence, detection.Confidence)
		inserted, err := s.achievementRepo.Insert(ctx, achievement)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateAchievement) {
				// Lost the race to a concurrent analysis; the invariant held.
				continue
			}
			return nil, fmt.Errorf("failed to record achievement: %w", err)
		}
		created = append(created, *inserted)
	}

	return created, nil
}

// appendAuditLog records the invocation asynchronously. Logging is
// best-effort: the response never waits for it and never fails on it.
func (s *analysisServiceImpl) appendAuditLog(req *dto.AnalyzeSessionRequest, result *domain.ClassificationResult, processingMs int64) {
	detectedIDs := make([]string, len(result.Detections))
	for i, d := range result.Detections {
		detectedIDs[i] = d.CanDoID
	}

	entry := &domain.AnalysisLog{
		SessionID:        req.SessionID,
		UserID:           req.UserID,
		TranscriptLength: len(req.Transcript),
		DetectedCanDoIDs: detectedIDs,
		Model:            result.Model,
		PromptVersion:    result.PromptVersion,
		ProcessingMs:     processingMs,
		HasError:         result.Failed,
		ErrorMessage:     result.FailureReason,
		CreatedAt:        time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := s.logRepo.Append(ctx, entry); err != nil {
			logger.Get().Warn("Failed to append analysis audit log",
				zap.Error(err),
				zap.String("session_id", entry.SessionID))
		}
	}()
}

func buildAnalyzeResponse(sessionID, level string, result *domain.ClassificationResult, created []domain.Achievement, processingMs int64) *dto.AnalyzeSessionResponse {
	resp := &dto.AnalyzeSessionResponse{
		SessionID:            sessionID,
		UserLevel:            level,
		DetectedAchievements: make([]dto.DetectedAchievement, 0, len(result.Detections)),
		NewAchievements:      make([]dto.NewAchievement, 0, len(created)),
		ProcessingTimeMs:     processingMs,
		AnalysisError:        result.FailureReason,
	}

	for _, d := range result.Detections {
		resp.DetectedAchievements = append(resp.DetectedAchievements, dto.DetectedAchievement{
			CanDoID:    d.CanDoID,
			Confidence: d.Confidence,
			Evidence:   d.Evidence,
		})
	}
	for _, a := range created {
		achievedAt := a.AchievedAt
		resp.NewAchievements = append(resp.NewAchievements, dto.NewAchievement{
			CanDoID:    a.CanDoID,
			Source:     a.Source,
			Confidence: a.Confidence,
			Evidence:   a.Evidence,
			AchievedAt: &achievedAt,
		})
	}
	return resp
}
