package domain

import (
	"context"
	"time"
)

// CanDoStatement is a single CEFR capability descriptor. The catalog is
// immutable reference data created by the one-time import; the serving
// path never mutates it.
type CanDoStatement struct {
	ID           string
	Level        string
	SkillType    string
	Mode         string
	Activity     string
	Scale        string
	Descriptor   string
	Keywords     []string
	DisplayOrder int
}

// Achievement source values.
const (
	SourceAutomatic = "automatic"
	SourceManual    = "manual"
)

// Achievement records that a learner has demonstrated a descriptor. The
// (UserID, CanDoID) pair is unique per learner; Confidence is only set for
// automatic detections. AdminApproved defaults to true and may be set
// false to soft-revoke without deleting the record.
type Achievement struct {
	ID            string
	UserID        string
	CanDoID       string
	Source        string
	Confidence    *float64
	Evidence      string
	SessionID     string
	AdminApproved bool
	AchievedAt    time.Time
}

// NewAutomaticAchievement builds an achievement for a classifier detection.
func NewAutomaticAchievement(userID, candoID, sessionID, evidence string, confidence float64) *Achievement {
	return &Achievement{
		UserID:        userID,
		CanDoID:       candoID,
		Source:        SourceAutomatic,
		Confidence:    &confidence,
		Evidence:      evidence,
		SessionID:     sessionID,
		AdminApproved: true,
		AchievedAt:    time.Now().UTC(),
	}
}

// NewManualAchievement builds an achievement granted by an administrator.
func NewManualAchievement(userID, candoID string) *Achievement {
	return &Achievement{
		UserID:        userID,
		CanDoID:       candoID,
		Source:        SourceManual,
		AdminApproved: true,
		AchievedAt:    time.Now().UTC(),
	}
}

// AnalysisLog is one append-only audit entry per classification invocation.
type AnalysisLog struct {
	ID               string
	SessionID        string
	UserID           string
	TranscriptLength int
	DetectedCanDoIDs []string
	Model            string
	PromptVersion    string
	ProcessingMs     int64
	HasError         bool
	ErrorMessage     string
	CreatedAt        time.Time
}

// Profile is the application-level user record kept alongside the auth
// user in Supabase.
type Profile struct {
	ID           string
	Name         string
	Surname      string
	Tier         string
	EnglishLevel string
	IsAdmin      bool
}

// CanDoRepository reads the descriptor catalog, ordered by display order.
type CanDoRepository interface {
	ListAll(ctx context.Context) ([]CanDoStatement, error)
	ListByLevels(ctx context.Context, levels []string) ([]CanDoStatement, error)
}

// AchievementRepository persists learner achievements. Insert must
// independently enforce the (user, cando) uniqueness invariant: the
// service's check-then-insert is not transactional, so a concurrent
// duplicate insert has to be ignored at this boundary.
type AchievementRepository interface {
	Find(ctx context.Context, userID, candoID string) (*Achievement, error)
	Insert(ctx context.Context, achievement *Achievement) (*Achievement, error)
	ListByUser(ctx context.Context, userID string) ([]Achievement, error)
	SetApproval(ctx context.Context, userID, candoID string, approved bool) error
	Delete(ctx context.Context, userID, candoID string) error
}

// ErrDuplicateAchievement is returned by Insert when the storage layer
// rejected the row because the learner already holds the descriptor.
var ErrDuplicateAchievement = NewError(CodeConflict, "achievement already exists for this user and descriptor", nil)

// AnalysisLogRepository appends audit entries. Best-effort: callers must
// not fail a request because an append failed.
type AnalysisLogRepository interface {
	Append(ctx context.Context, entry *AnalysisLog) error
}

// ProfileRepository reads application profiles (admin flag, level, tier).
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*Profile, error)
	ListAll(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, profile *Profile) error
}
