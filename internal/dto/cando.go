package dto

import "time"

// AnalyzeSessionRequest is the body of POST /analyze_session.
type AnalyzeSessionRequest struct {
	SessionID  string `json:"session_id"`
	UserID     string `json:"user_id"`
	Transcript string `json:"transcript"`
	UserLevel  string `json:"user_level,omitempty"`
}

// DetectedAchievement is one classifier detection as returned to the
// caller, whether or not it was newly recorded.
type DetectedAchievement struct {
	CanDoID    string  `json:"cando_id"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
}

// NewAchievement is an achievement the analysis just created.
type NewAchievement struct {
	CanDoID    string     `json:"cando_id"`
	Source     string     `json:"source"`
	Confidence *float64   `json:"confidence,omitempty"`
	Evidence   string     `json:"evidence,omitempty"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

// AnalyzeSessionResponse is the result of one transcript analysis.
// AnalysisError is set when classification failed softly; the request
// still succeeds with empty detections.
type AnalyzeSessionResponse struct {
	SessionID            string                `json:"session_id"`
	UserLevel            string                `json:"user_level"`
	DetectedAchievements []DetectedAchievement `json:"detected_achievements"`
	NewAchievements      []NewAchievement      `json:"new_achievements"`
	ProcessingTimeMs     int64                 `json:"processing_time_ms"`
	AnalysisError        string                `json:"analysis_error,omitempty"`
}

// RecentAchievement is one achieved descriptor in a level's
// most-recent-first list.
type RecentAchievement struct {
	CanDoID    string     `json:"cando_id"`
	Descriptor string     `json:"descriptor"`
	Level      string     `json:"level"`
	SkillType  string     `json:"skill_type"`
	Source     string     `json:"source"`
	Confidence *float64   `json:"confidence,omitempty"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

// LevelProgress is one CEFR level's slice of GET /users/{id}/cando.
type LevelProgress struct {
	Level              string              `json:"level"`
	Total              int                 `json:"total"`
	Achieved           int                 `json:"achieved"`
	Percentage         float64             `json:"percentage"`
	RecentAchievements []RecentAchievement `json:"recent_achievements"`
}

// CanDoProgressResponse is the level-grouped progress view.
type CanDoProgressResponse struct {
	UserID            string          `json:"user_id"`
	Levels            []LevelProgress `json:"levels"`
	TotalAchievements int             `json:"total_achievements"`
}
