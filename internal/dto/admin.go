package dto

import "time"

// AdminUser is one entry of the admin user list, merged from the auth
// user and its application profile.
type AdminUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	Name             string     `json:"name,omitempty"`
	Surname          string     `json:"surname,omitempty"`
	Tier             string     `json:"tier,omitempty"`
	EnglishLevel     string     `json:"english_level,omitempty"`
	IsAdmin          bool       `json:"is_admin"`
}

// AdminUsersResponse is the body of GET /admin/users.
type AdminUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// CreateUserRequest is the body of POST /admin/users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Tier     string `json:"tier,omitempty" validate:"omitempty,oneof=free premium"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

// CreateUserResponse confirms the created auth user.
type CreateUserResponse struct {
	Success bool `json:"success"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// ResetPasswordRequest is the body of POST /admin/users/{id}/reset-password.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// SuccessResponse is the generic mutation acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}
