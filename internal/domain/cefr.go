package domain

import "strings"

// CEFRLevels is the fixed proficiency order, lowest first. The "+"
// sub-tiers sit between their base levels, matching the imported
// descriptor catalog.
var CEFRLevels = []string{"A1", "A2", "A2+", "B1", "B1+", "B2", "B2+", "C1", "C2"}

// DefaultLevel is assumed when a learner's level is missing or unrecognized.
const DefaultLevel = "A2"

// assessmentLookback is how many levels below the learner's own level are
// still assessed, to give the classifier context for borderline learners.
const assessmentLookback = 2

// LevelIndex returns the position of level in the CEFR order, or -1 if the
// string is not a known level.
func LevelIndex(level string) int {
	for i, l := range CEFRLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// IsValidLevel reports whether level is one of the fixed CEFR tiers.
func IsValidLevel(level string) bool {
	return LevelIndex(level) >= 0
}

// NormalizeLevel uppercases and trims a level string so that "b1+" and
// " B1+ " resolve to the catalog's spelling.
func NormalizeLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// WindowLevels computes the set of levels worth assessing for a learner at
// the given level: the level itself, everything above it (over-performance
// must stay detectable), and up to two levels below for context. Unknown
// or empty input falls back to DefaultLevel rather than failing.
func WindowLevels(current string) []string {
	idx := LevelIndex(NormalizeLevel(current))
	if idx < 0 {
		idx = LevelIndex(DefaultLevel)
	}

	start := idx - assessmentLookback
	if start < 0 {
		start = 0
	}

	window := make([]string, 0, len(CEFRLevels)-start)
	window = append(window, CEFRLevels[start:]...)
	return window
}
