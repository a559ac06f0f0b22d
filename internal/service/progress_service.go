package service

import (
	"context"
	"fmt"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
)

// ProgressService builds the level-grouped Can-Do progress view. The
// summary is derived from catalog + achievements on every read; nothing
// is cached.
type ProgressService interface {
	GetUserProgress(ctx context.Context, userID string) (*dto.CanDoProgressResponse, error)
}

type progressServiceImpl struct {
	candoRepo       domain.CanDoRepository
	achievementRepo domain.AchievementRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(candoRepo domain.CanDoRepository, achievementRepo domain.AchievementRepository) ProgressService {
	return &progressServiceImpl{
		candoRepo:       candoRepo,
		achievementRepo: achievementRepo,
	}
}

func (s *progressServiceImpl) GetUserProgress(ctx context.Context, userID string) (*dto.CanDoProgressResponse, error) {
	catalog, err := s.candoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptor catalog: %w", err)
	}

	achievements, err := s.achievementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}

	summary := domain.AggregateProgress(catalog, achievements)

	resp := &dto.CanDoProgressResponse{
		UserID:            userID,
		Levels:            make([]dto.LevelProgress, 0, len(summary.Levels)),
		TotalAchievements: summary.TotalAchievements,
	}
	for _, level := range summary.Levels {
		levelDTO := dto.LevelProgress{
			Level:              level.Level,
			Total:              level.Total,
			Achieved:           level.Achieved,
			Percentage:         level.Percentage,
			RecentAchievements: make([]dto.RecentAchievement, 0, len(level.RecentAchievements)),
		}
		for _, item := range level.RecentAchievements {
			recent := dto.RecentAchievement{
				CanDoID:    item.CanDoID,
				Descriptor: item.Descriptor,
				Level:      item.Level,
				SkillType:  item.SkillType,
				Source:     item.Source,
				Confidence: item.Confidence,
			}
			if !item.AchievedAt.IsZero() {
				achievedAt := item.AchievedAt
				recent.AchievedAt = &achievedAt
			}
			levelDTO.RecentAchievements = append(levelDTO.RecentAchievements, recent)
		}
		resp.Levels = append(resp.Levels, levelDTO)
	}

	return resp, nil
}
