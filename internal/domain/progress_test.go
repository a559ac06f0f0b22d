package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeStatements(level string, count int) []CanDoStatement {
	statements := make([]CanDoStatement, count)
	for i := range statements {
		statements[i] = CanDoStatement{
			ID:           fmt.Sprintf("%s-%02d", level, i+1),
			Level:        level,
			SkillType:    "speaking",
			Descriptor:   fmt.Sprintf("Can do something at %s (%d)", level, i+1),
			DisplayOrder: i + 1,
		}
	}
	return statements
}

func TestAggregateProgress_Percentages(t *testing.T) {
	catalog := makeStatements("B1", 10)

	achievements := []Achievement{
		{CanDoID: "B1-01", UserID: "u1", Source: SourceAutomatic, AdminApproved: true, AchievedAt: time.Now()},
		{CanDoID: "B1-02", UserID: "u1", Source: SourceAutomatic, AdminApproved: true, AchievedAt: time.Now()},
		{CanDoID: "B1-03", UserID: "u1", Source: SourceManual, AdminApproved: true, AchievedAt: time.Now()},
	}

	summary := AggregateProgress(catalog, achievements)

	require.Len(t, summary.Levels, 1)
	level := summary.Levels[0]
	assert.Equal(t, "B1", level.Level)
	assert.Equal(t, 10, level.Total)
	assert.Equal(t, 3, level.Achieved)
	assert.Equal(t, 30.0, level.Percentage)
	assert.Equal(t, 3, summary.TotalAchievements)
}

func TestAggregateProgress_OneDecimalRounding(t *testing.T) {
	catalog := makeStatements("A2", 3)
	achievements := []Achievement{
		{CanDoID: "A2-01", AdminApproved: true, AchievedAt: time.Now()},
	}

	summary := AggregateProgress(catalog, achievements)

	require.Len(t, summary.Levels, 1)
	assert.Equal(t, 33.3, summary.Levels[0].Percentage)
}

func TestAggregateProgress_LevelsInCEFROrderAndAbsentLevelsOmitted(t *testing.T) {
	catalog := append(makeStatements("C1", 2), makeStatements("A1", 2)...)
	catalog = append(catalog, makeStatements("B1+", 2)...)

	summary := AggregateProgress(catalog, nil)

	require.Len(t, summary.Levels, 3)
	assert.Equal(t, "A1", summary.Levels[0].Level)
	assert.Equal(t, "B1+", summary.Levels[1].Level)
	assert.Equal(t, "C1", summary.Levels[2].Level)

	for _, level := range summary.Levels {
		assert.Equal(t, 0, level.Achieved)
		assert.Equal(t, 0.0, level.Percentage)
		assert.Empty(t, level.RecentAchievements)
	}
	assert.Equal(t, 0, summary.TotalAchievements)
}

func TestAggregateProgress_RecentAchievementsMostRecentFirst(t *testing.T) {
	catalog := makeStatements("B2", 4)
	t1 := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)

	achievements := []Achievement{
		{CanDoID: "B2-01", AdminApproved: true, AchievedAt: t1},
		{CanDoID: "B2-02", AdminApproved: true, AchievedAt: t3},
		{CanDoID: "B2-03", AdminApproved: true, AchievedAt: t2},
		{CanDoID: "B2-04", AdminApproved: true}, // no timestamp, sorts last
	}

	summary := AggregateProgress(catalog, achievements)

	require.Len(t, summary.Levels, 1)
	recent := summary.Levels[0].RecentAchievements
	require.Len(t, recent, 4)
	assert.Equal(t, "B2-02", recent[0].CanDoID)
	assert.Equal(t, "B2-03", recent[1].CanDoID)
	assert.Equal(t, "B2-01", recent[2].CanDoID)
	assert.Equal(t, "B2-04", recent[3].CanDoID)
}

func TestAggregateProgress_DisapprovedExcludedEverywhere(t *testing.T) {
	catalog := makeStatements("A2", 2)
	achievements := []Achievement{
		{CanDoID: "A2-01", AdminApproved: true, AchievedAt: time.Now()},
		{CanDoID: "A2-02", AdminApproved: false, AchievedAt: time.Now()},
	}

	summary := AggregateProgress(catalog, achievements)

	require.Len(t, summary.Levels, 1)
	level := summary.Levels[0]
	assert.Equal(t, 1, level.Achieved)
	assert.Equal(t, 50.0, level.Percentage)
	require.Len(t, level.RecentAchievements, 1)
	assert.Equal(t, "A2-01", level.RecentAchievements[0].CanDoID)
	assert.Equal(t, 1, summary.TotalAchievements)
}

func TestAggregateProgress_AchievementMetadataCarriedThrough(t *testing.T) {
	catalog := makeStatements("B1", 1)
	confidence := 0.85
	achievedAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	achievements := []Achievement{
		{CanDoID: "B1-01", Source: SourceAutomatic, Confidence: &confidence, AdminApproved: true, AchievedAt: achievedAt},
	}

	summary := AggregateProgress(catalog, achievements)

	require.Len(t, summary.Levels, 1)
	require.Len(t, summary.Levels[0].RecentAchievements, 1)
	item := summary.Levels[0].RecentAchievements[0]
	assert.Equal(t, "B1-01", item.CanDoID)
	assert.Equal(t, "speaking", item.SkillType)
	assert.Equal(t, SourceAutomatic, item.Source)
	require.NotNil(t, item.Confidence)
	assert.Equal(t, 0.85, *item.Confidence)
	assert.Equal(t, achievedAt, item.AchievedAt)
}
