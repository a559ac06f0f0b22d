package supabase

import (
	"context"
	"net/http"
	"net/url"

	"lingua-tutor/internal/domain"
)

const profilesTable = "profiles"

// ProfileRepository reads and creates application profiles.
type ProfileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// GetByID returns the profile for a user, or nil when none exists.
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+userID)
	query.Set("limit", "1")

	var rows []profileRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + profilesTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	profile := rows[0].toDomain()
	return &profile, nil
}

// ListAll returns every profile in the project.
func (r *ProfileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	query := url.Values{}
	query.Set("select", "*")

	var rows []profileRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + profilesTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, len(rows))
	for i, row := range rows {
		profiles[i] = row.toDomain()
	}
	return profiles, nil
}

// Create stores the profile row for a freshly created auth user.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	row := profileRow{
		ID:           profile.ID,
		Name:         profile.Name,
		Surname:      profile.Surname,
		Tier:         profile.Tier,
		EnglishLevel: profile.EnglishLevel,
		IsAdmin:      profile.IsAdmin,
	}
	return r.client.do(ctx, request{
		method: http.MethodPost,
		path:   restPath + profilesTable,
		body:   []profileRow{row},
	}, nil)
}

var _ domain.ProfileRepository = (*ProfileRepository)(nil)
