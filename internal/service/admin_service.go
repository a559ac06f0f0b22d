package service

import (
	"context"
	"errors"
	"fmt"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/repository/supabase"

	"go.uber.org/zap"
)

// DefaultTier is assigned to admin-created users when none is given.
const DefaultTier = "free"

// AdminService proxies user management to the Supabase admin API and
// handles manual Can-Do grants and revocations.
type AdminService interface {
	ListUsers(ctx context.Context) (*dto.AdminUsersResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, userID, password string) error

	GrantAchievement(ctx context.Context, userID, candoID string) (*domain.Achievement, error)
	RevokeAchievement(ctx context.Context, userID, candoID string, soft bool) error
}

type adminServiceImpl struct {
	authAdmin       *supabase.AuthAdminClient
	profileRepo     domain.ProfileRepository
	achievementRepo domain.AchievementRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	authAdmin *supabase.AuthAdminClient,
	profileRepo domain.ProfileRepository,
	achievementRepo domain.AchievementRepository,
) AdminService {
	return &adminServiceImpl{
		authAdmin:       authAdmin,
		profileRepo:     profileRepo,
		achievementRepo: achievementRepo,
	}
}

// ListUsers merges auth users with their application profiles. Users
// without a profile still appear; they just carry empty profile fields.
func (s *adminServiceImpl) ListUsers(ctx context.Context) (*dto.AdminUsersResponse, error) {
	authUsers, err := s.authAdmin.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth users: %w", err)
	}

	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	profilesByID := make(map[string]domain.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	merged := make([]dto.AdminUser, 0, len(authUsers))
	for _, authUser := range authUsers {
		user := dto.AdminUser{
			ID:               authUser.ID,
			Email:            authUser.Email,
			CreatedAt:        authUser.CreatedAt,
			EmailConfirmedAt: authUser.EmailConfirmedAt,
		}
		if profile, ok := profilesByID[authUser.ID]; ok {
			user.Name = profile.Name
			user.Surname = profile.Surname
			user.Tier = profile.Tier
			user.EnglishLevel = profile.EnglishLevel
			user.IsAdmin = profile.IsAdmin
		}
		merged = append(merged, user)
	}

	return &dto.AdminUsersResponse{Users: merged}, nil
}

// CreateUser creates the auth user first, then its profile. A profile
// failure after the auth user exists is logged and surfaced; the auth
// record is left in place for a retry rather than rolled back.
func (s *adminServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	tier := req.Tier
	if tier == "" {
		tier = DefaultTier
	}

	authUser, err := s.authAdmin.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth user: %w", err)
	}

	profile := &domain.Profile{
		ID:      authUser.ID,
		Name:    req.Name,
		Surname: req.Surname,
		Tier:    tier,
		IsAdmin: req.IsAdmin,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		logger.Get().Error("Auth user created but profile insert failed",
			zap.String("user_id", authUser.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create profile for user %s: %w", authUser.ID, err)
	}

	resp := &dto.CreateUserResponse{Success: true}
	resp.User.ID = authUser.ID
	resp.User.Email = authUser.Email
	return resp, nil
}

func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	if err := s.authAdmin.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) ResetPassword(ctx context.Context, userID, password string) error {
	if err := s.authAdmin.UpdatePassword(ctx, userID, password); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// GrantAchievement records a manual achievement. Granting over an
// existing disapproved record re-approves it instead of duplicating;
// granting over an approved one is a conflict.
func (s *adminServiceImpl) GrantAchievement(ctx context.Context, userID, candoID string) (*domain.Achievement, error) {
	existing, err := s.achievementRepo.Find(ctx, userID, candoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing achievement: %w", err)
	}
	if existing != nil {
		if !existing.AdminApproved {
			if err := s.achievementRepo.SetApproval(ctx, userID, candoID, true); err != nil {
				return nil, fmt.Errorf("failed to re-approve achievement: %w", err)
			}
			existing.AdminApproved = true
			return existing, nil
		}
		return nil, domain.ErrDuplicateAchievement
	}

	inserted, err := s.achievementRepo.Insert(ctx, domain.NewManualAchievement(userID, candoID))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAchievement) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to grant achievement: %w", err)
	}
	return inserted, nil
}

// RevokeAchievement removes an achievement. Soft revocation flips the
// admin-approved flag and keeps the record; hard revocation deletes it.
func (s *adminServiceImpl) RevokeAchievement(ctx context.Context, userID, candoID string, soft bool) error {
	existing, err := s.achievementRepo.Find(ctx, userID, candoID)
	if err != nil {
		return fmt.Errorf("failed to check existing achievement: %w", err)
	}
	if existing == nil {
		return domain.NewNotFoundError("achievement not found")
	}

	if soft {
		if err := s.achievementRepo.SetApproval(ctx, userID, candoID, false); err != nil {
			return fmt.Errorf("failed to disapprove achievement: %w", err)
		}
		return nil
	}

	if err := s.achievementRepo.Delete(ctx, userID, candoID); err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	return nil
}
