package api

import (
	"context"
	"net/http"

	"github.com/prem2230/food-delivery-app-client/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
	Number   string          `json:"number"`
}

type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// Login authenticates with email/password and returns the minted token
// with the user record.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// Register creates an account. Registration alone does not establish a
// session; callers log in afterwards with the same credentials.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/register", nil, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &Error{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// GetProfile fetches the authenticated user's profile. Requires a
// valid token.
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
