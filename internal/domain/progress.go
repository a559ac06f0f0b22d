package domain

import (
	"math"
	"sort"
	"time"
)

// AchievedCanDo is an achieved descriptor enriched with its achievement
// metadata, as presented in the recent-achievements list.
type AchievedCanDo struct {
	CanDoID    string
	Descriptor string
	Level      string
	SkillType  string
	Source     string
	Confidence *float64
	AchievedAt time.Time
}

// LevelProgress summarizes one CEFR level of the catalog for a learner.
type LevelProgress struct {
	Level              string
	Total              int
	Achieved           int
	Percentage         float64
	RecentAchievements []AchievedCanDo
}

// ProgressSummary is the derived, never-persisted progress view. It is
// recomputed from catalog + achievements on every read.
type ProgressSummary struct {
	Levels            []LevelProgress
	TotalAchievements int
}

// AggregateProgress merges the full descriptor catalog with a learner's
// achievements into per-level totals and percentages. Achievements with
// AdminApproved == false are excluded entirely; they stay stored but
// count nowhere. Levels come out in fixed CEFR order, and levels absent
// from the catalog are omitted.
func AggregateProgress(catalog []CanDoStatement, achievements []Achievement) *ProgressSummary {
	byID := make(map[string]*Achievement, len(achievements))
	for i := range achievements {
		a := &achievements[i]
		if !a.AdminApproved {
			continue
		}
		byID[a.CanDoID] = a
	}

	byLevel := make(map[string][]CanDoStatement)
	for _, stmt := range catalog {
		byLevel[stmt.Level] = append(byLevel[stmt.Level], stmt)
	}

	summary := &ProgressSummary{}
	for _, level := range CEFRLevels {
		statements, ok := byLevel[level]
		if !ok {
			continue
		}

		progress := LevelProgress{Level: level, Total: len(statements)}
		for _, stmt := range statements {
			achievement, ok := byID[stmt.ID]
			if !ok {
				continue
			}
			progress.Achieved++
			progress.RecentAchievements = append(progress.RecentAchievements, AchievedCanDo{
				CanDoID:    stmt.ID,
				Descriptor: stmt.Descriptor,
				Level:      stmt.Level,
				SkillType:  stmt.SkillType,
				Source:     achievement.Source,
				Confidence: achievement.Confidence,
				AchievedAt: achievement.AchievedAt,
			})
		}

		if progress.Total > 0 {
			progress.Percentage = roundToOneDecimal(float64(progress.Achieved) / float64(progress.Total) * 100)
		}

		// Most recent first; entries without a timestamp sort last.
		sort.SliceStable(progress.RecentAchievements, func(i, j int) bool {
			ti, tj := progress.RecentAchievements[i].AchievedAt, progress.RecentAchievements[j].AchievedAt
			if ti.IsZero() {
				return false
			}
			if tj.IsZero() {
				return true
			}
			return ti.After(tj)
		})

		summary.TotalAchievements += progress.Achieved
		summary.Levels = append(summary.Levels, progress)
	}

	return summary
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
