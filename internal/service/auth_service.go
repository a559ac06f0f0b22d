package service

import (
	"context"
	"fmt"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the verified claims of a Supabase access token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// AuthService verifies Supabase-issued bearer tokens and resolves admin
// privileges. Tokens are verified locally against the project's JWT
// secret instead of round-tripping to the auth API on every request.
type AuthService interface {
	ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	RequireAdmin(ctx context.Context, userID string) error
}

type authServiceImpl struct {
	jwtSecret   []byte
	profileRepo domain.ProfileRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg config.SupabaseConfig, profileRepo domain.ProfileRepository) (AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("supabase jwt secret cannot be empty")
	}
	return &authServiceImpl{
		jwtSecret:   []byte(cfg.JWTSecret),
		profileRepo: profileRepo,
	}, nil
}

type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ValidateToken verifies the HS256 signature and expiry of a Supabase
// access token and extracts the user's identity.
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &supabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "invalid token", err)
	}
	if !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}
	if claims.Subject == "" {
		return nil, domain.NewUnauthorizedError("token has no subject")
	}

	return &TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// RequireAdmin checks the user's profile for the admin flag. A missing
// profile or an unset flag is Forbidden, not Unauthorized: the token was
// fine, the privilege is not there.
func (s *authServiceImpl) RequireAdmin(ctx context.Context, userID string) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.NewUpstreamError("failed to check admin status", err)
	}
	if profile == nil || !profile.IsAdmin {
		return domain.NewForbiddenError("admin access required")
	}
	return nil
}
