package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowLevels(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		expected []string
	}{
		{
			name:     "lowest level keeps everything",
			current:  "A1",
			expected: []string{"A1", "A2", "A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
		{
			name:     "B1 looks back two levels",
			current:  "B1",
			expected: []string{"A2", "A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
		{
			name:     "B2 looks back two levels",
			current:  "B2",
			expected: []string{"B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
		{
			name:     "top level keeps two below",
			current:  "C2",
			expected: []string{"B2+", "C1", "C2"},
		},
		{
			name:     "unknown level behaves as A2",
			current:  "Z9",
			expected: []string{"A1", "A2", "A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
		{
			name:     "empty level behaves as A2",
			current:  "",
			expected: []string{"A1", "A2", "A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
		{
			name:     "lowercase input is normalized",
			current:  "b1+",
			expected: []string{"A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WindowLevels(tt.current))
		})
	}
}

func TestWindowLevels_AllLevelsIncludeSelfAndAbove(t *testing.T) {
	for _, level := range CEFRLevels {
		window := WindowLevels(level)
		idx := LevelIndex(level)

		for _, l := range CEFRLevels[idx:] {
			assert.Contains(t, window, l, "window for %s must include %s", level, l)
		}
		for _, l := range window {
			assert.GreaterOrEqual(t, LevelIndex(l), idx-2, "window for %s must not reach below two levels", level)
		}
	}
}

func TestLevelIndex(t *testing.T) {
	assert.Equal(t, 0, LevelIndex("A1"))
	assert.Equal(t, 2, LevelIndex("A2+"))
	assert.Equal(t, 8, LevelIndex("C2"))
	assert.Equal(t, -1, LevelIndex("D1"))
	assert.Equal(t, -1, LevelIndex(""))
}

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, "B1+", NormalizeLevel(" b1+ "))
	assert.Equal(t, "A2", NormalizeLevel("a2"))
}
