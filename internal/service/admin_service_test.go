package service

import (
	"context"
	"testing"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Grant/revoke tests pass a nil auth client; those paths never touch the
// Supabase admin API.
func newAdminFixture() (*MockProfileRepository, *MockAchievementRepository, AdminService) {
	profileRepo := new(MockProfileRepository)
	achievementRepo := new(MockAchievementRepository)
	svc := NewAdminService(nil, profileRepo, achievementRepo)
	return profileRepo, achievementRepo, svc
}

func TestGrantAchievement_New(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").Return(nil, nil)
	achievementRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *domain.Achievement) bool {
		return a.Source == domain.SourceManual && a.Confidence == nil && a.AdminApproved
	})).Return(&domain.Achievement{ID: "ach-1", CanDoID: "cd-1", Source: domain.SourceManual}, nil)

	granted, err := svc.GrantAchievement(context.Background(), "user-1", "cd-1")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceManual, granted.Source)
	achievementRepo.AssertExpectations(t)
}

func TestGrantAchievement_ReapprovesDisapproved(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").
		Return(&domain.Achievement{ID: "ach-1", CanDoID: "cd-1", AdminApproved: false}, nil)
	achievementRepo.On("SetApproval", mock.Anything, "user-1", "cd-1", true).Return(nil)

	granted, err := svc.GrantAchievement(context.Background(), "user-1", "cd-1")

	require.NoError(t, err)
	assert.True(t, granted.AdminApproved)
	achievementRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGrantAchievement_AlreadyApprovedConflicts(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").
		Return(&domain.Achievement{ID: "ach-1", CanDoID: "cd-1", AdminApproved: true}, nil)

	_, err := svc.GrantAchievement(context.Background(), "user-1", "cd-1")

	assert.ErrorIs(t, err, domain.ErrDuplicateAchievement)
}

func TestRevokeAchievement_Soft(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").
		Return(&domain.Achievement{ID: "ach-1", AdminApproved: true}, nil)
	achievementRepo.On("SetApproval", mock.Anything, "user-1", "cd-1", false).Return(nil)

	err := svc.RevokeAchievement(context.Background(), "user-1", "cd-1", true)

	require.NoError(t, err)
	achievementRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestRevokeAchievement_Hard(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").
		Return(&domain.Achievement{ID: "ach-1"}, nil)
	achievementRepo.On("Delete", mock.Anything, "user-1", "cd-1").Return(nil)

	err := svc.RevokeAchievement(context.Background(), "user-1", "cd-1", false)

	require.NoError(t, err)
	achievementRepo.AssertExpectations(t)
}

func TestRevokeAchievement_MissingIsNotFound(t *testing.T) {
	_, achievementRepo, svc := newAdminFixture()

	achievementRepo.On("Find", mock.Anything, "user-1", "cd-1").Return(nil, nil)

	err := svc.RevokeAchievement(context.Background(), "user-1", "cd-1", false)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
