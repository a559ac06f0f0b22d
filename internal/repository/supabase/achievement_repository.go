package supabase

import (
	"context"
	"net/http"
	"net/url"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/util"
)

const achievementsTable = "user_cando_achievements"

// AchievementRepository persists learner achievements in PostgREST.
type AchievementRepository struct {
	client *Client
}

func NewAchievementRepository(client *Client) *AchievementRepository {
	return &AchievementRepository{client: client}
}

// Find returns the achievement for (user, descriptor), or nil when the
// learner does not hold it.
func (r *AchievementRepository) Find(ctx context.Context, userID, candoID string) (*domain.Achievement, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+userID)
	query.Set("cando_id", "eq."+candoID)
	query.Set("limit", "1")

	var rows []achievementRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + achievementsTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	achievement := rows[0].toDomain()
	return &achievement, nil
}

// Insert stores a new achievement. The upsert is conditional on the
// (user_id, cando_id) unique constraint with duplicates ignored, which is
// what keeps the uniqueness invariant intact when two concurrent analyses
// both pass the service's existence check. A silently ignored insert
// surfaces as ErrDuplicateAchievement.
func (r *AchievementRepository) Insert(ctx context.Context, achievement *domain.Achievement) (*domain.Achievement, error) {
	row := achievementToRow(achievement)
	if row.ID == "" {
		row.ID = util.NewULID()
	}

	query := url.Values{}
	query.Set("on_conflict", "user_id,cando_id")

	var inserted []achievementRow
	err := r.client.do(ctx, request{
		method: http.MethodPost,
		path:   restPath + achievementsTable,
		query:  query,
		prefer: preferIgnoreDuplicates,
		body:   []achievementRow{row},
	}, &inserted)
	if err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, domain.ErrDuplicateAchievement
	}

	result := inserted[0].toDomain()
	return &result, nil
}

// ListByUser returns all achievements for a learner, including
// disapproved ones; filtering is the aggregator's concern.
func (r *AchievementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+userID)
	query.Set("order", "achieved_at.desc")

	var rows []achievementRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + achievementsTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}

	achievements := make([]domain.Achievement, len(rows))
	for i, row := range rows {
		achievements[i] = row.toDomain()
	}
	return achievements, nil
}

// SetApproval flips the admin-approved flag without touching the record
// otherwise. Setting it false soft-revokes the achievement.
func (r *AchievementRepository) SetApproval(ctx context.Context, userID, candoID string, approved bool) error {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("cando_id", "eq."+candoID)

	return r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   restPath + achievementsTable,
		query:  query,
		body:   map[string]bool{"admin_approved": approved},
	}, nil)
}

// Delete removes the achievement record entirely.
func (r *AchievementRepository) Delete(ctx context.Context, userID, candoID string) error {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("cando_id", "eq."+candoID)

	return r.client.do(ctx, request{
		method: http.MethodDelete,
		path:   restPath + achievementsTable,
		query:  query,
	}, nil)
}

var _ domain.AchievementRepository = (*AchievementRepository)(nil)
