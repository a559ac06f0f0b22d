package supabase

import (
	"time"

	"lingua-tutor/internal/domain"
)

// Row shapes for the PostgREST tables. Kept separate from the domain
// types so column naming stays a storage concern.

type candoStatementRow struct {
	ID           string   `json:"id,omitempty"`
	Level        string   `json:"level"`
	SkillType    string   `json:"skill_type"`
	Mode         string   `json:"mode,omitempty"`
	Activity     string   `json:"activity,omitempty"`
	Scale        *string  `json:"scale,omitempty"`
	Descriptor   string   `json:"descriptor"`
	Keywords     []string `json:"keywords,omitempty"`
	DisplayOrder int      `json:"display_order"`
}

func (r candoStatementRow) toDomain() domain.CanDoStatement {
	stmt := domain.CanDoStatement{
		ID:           r.ID,
		Level:        r.Level,
		SkillType:    r.SkillType,
		Mode:         r.Mode,
		Activity:     r.Activity,
		Descriptor:   r.Descriptor,
		Keywords:     r.Keywords,
		DisplayOrder: r.DisplayOrder,
	}
	if r.Scale != nil {
		stmt.Scale = *r.Scale
	}
	return stmt
}

type achievementRow struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	CanDoID       string     `json:"cando_id"`
	Source        string     `json:"source"`
	Confidence    *float64   `json:"confidence,omitempty"`
	Evidence      string     `json:"evidence,omitempty"`
	SessionID     string     `json:"session_id,omitempty"`
	AdminApproved bool       `json:"admin_approved"`
	AchievedAt    *time.Time `json:"achieved_at,omitempty"`
}

func achievementToRow(a *domain.Achievement) achievementRow {
	row := achievementRow{
		ID:            a.ID,
		UserID:        a.UserID,
		CanDoID:       a.CanDoID,
		Source:        a.Source,
		Confidence:    a.Confidence,
		Evidence:      a.Evidence,
		SessionID:     a.SessionID,
		AdminApproved: a.AdminApproved,
	}
	if !a.AchievedAt.IsZero() {
		at := a.AchievedAt
		row.AchievedAt = &at
	}
	return row
}

func (r achievementRow) toDomain() domain.Achievement {
	a := domain.Achievement{
		ID:            r.ID,
		UserID:        r.UserID,
		CanDoID:       r.CanDoID,
		Source:        r.Source,
		Confidence:    r.Confidence,
		Evidence:      r.Evidence,
		SessionID:     r.SessionID,
		AdminApproved: r.AdminApproved,
	}
	if r.AchievedAt != nil {
		a.AchievedAt = *r.AchievedAt
	}
	return a
}

type analysisLogRow struct {
	ID               string   `json:"id,omitempty"`
	SessionID        string   `json:"session_id"`
	UserID           string   `json:"user_id"`
	TranscriptLength int      `json:"transcript_length"`
	DetectedCanDoIDs []string `json:"detected_cando_ids"`
	Model            string   `json:"model"`
	PromptVersion    string   `json:"prompt_version"`
	ProcessingMs     int64    `json:"processing_time_ms"`
	HasError         bool     `json:"has_error"`
	ErrorMessage     string   `json:"error_message,omitempty"`
}

type profileRow struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Surname      string `json:"surname,omitempty"`
	Tier         string `json:"tier,omitempty"`
	EnglishLevel string `json:"english_level,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
}

func (r profileRow) toDomain() domain.Profile {
	return domain.Profile{
		ID:           r.ID,
		Name:         r.Name,
		Surname:      r.Surname,
		Tier:         r.Tier,
		EnglishLevel: r.EnglishLevel,
		IsAdmin:      r.IsAdmin,
	}
}
