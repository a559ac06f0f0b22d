package supabase

import (
	"context"
	"net/http"
	"time"
)

// AuthUser is an auth-side user record from the GoTrue admin API.
type AuthUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
}

// AuthAdminClient proxies the GoTrue admin endpoints. Every call is
// service-role; the HTTP layer must never expose these without an admin
// check first.
type AuthAdminClient struct {
	client *Client
}

func NewAuthAdminClient(client *Client) *AuthAdminClient {
	return &AuthAdminClient{client: client}
}

// ListUsers returns all auth users in the project.
func (a *AuthAdminClient) ListUsers(ctx context.Context) ([]AuthUser, error) {
	var resp struct {
		Users []AuthUser `json:"users"`
	}
	err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   authAdminPath + "users",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// CreateUser creates an auth user with the email pre-confirmed, the way
// admin-provisioned accounts are expected to work.
func (a *AuthAdminClient) CreateUser(ctx context.Context, email, password string) (*AuthUser, error) {
	var user AuthUser
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   authAdminPath + "users",
		body: map[string]interface{}{
			"email":         email,
			"password":      password,
			"email_confirm": true,
		},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword resets a user's password.
func (a *AuthAdminClient) UpdatePassword(ctx context.Context, userID, password string) error {
	return a.client.do(ctx, request{
		method: http.MethodPut,
		path:   authAdminPath + "users/" + userID,
		body:   map[string]string{"password": password},
	}, nil)
}

// DeleteUser removes an auth user.
func (a *AuthAdminClient) DeleteUser(ctx context.Context, userID string) error {
	return a.client.do(ctx, request{
		method: http.MethodDelete,
		path:   authAdminPath + "users/" + userID,
	}, nil)
}
