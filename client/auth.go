package client

import (
	"context"
	"fmt"

	"github.com/martinsv/sitetrack/models"
)

type LoginResponse struct {
	Token string          `json:"token"`
	User  models.AuthUser `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// MessageResponse is the backend's generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// PasswordResetResponse carries the generic message plus, in development
// setups, the reset token itself so the flow can be exercised without mail.
type PasswordResetResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
}

// Login exchanges credentials for a session token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, err := c.api.POST("/auth/login").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(payload).
		Send()
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to send login request: %w", err)
	}

	var out LoginResponse
	if err := parseResponse(resp, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (models.AuthUser, error) {
	if req.Role == "" {
		req.Role = "member"
	}

	resp, err := c.api.POST("/auth/register").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(req).
		Send()
	if err != nil {
		return models.AuthUser{}, fmt.Errorf("failed to send register request: %w", err)
	}

	var out models.AuthUser
	if err := parseResponse(resp, &out); err != nil {
		return models.AuthUser{}, err
	}
	return out, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (models.AuthUser, error) {
	resp, err := c.api.GET("/auth/me").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return models.AuthUser{}, fmt.Errorf("failed to send profile request: %w", err)
	}

	var out models.AuthUser
	if err := parseResponse(resp, &out); err != nil {
		return models.AuthUser{}, err
	}
	return out, nil
}

// ChangePassword swaps the current password for a new one.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (MessageResponse, error) {
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}

	resp, err := c.api.POST("/auth/change-password").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(payload).
		Send()
	if err != nil {
		return MessageResponse{}, fmt.Errorf("failed to send change-password request: %w", err)
	}

	var out MessageResponse
	if err := parseResponse(resp, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// RequestPasswordReset starts the reset flow. The backend answers with the
// same generic message whether or not the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (PasswordResetResponse, error) {
	resp, err := c.api.POST("/auth/forgot-password").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(map[string]string{"email": email}).
		Send()
	if err != nil {
		return PasswordResetResponse{}, fmt.Errorf("failed to send password-reset request: %w", err)
	}

	var out PasswordResetResponse
	if err := parseResponse(resp, &out); err != nil {
		return PasswordResetResponse{}, err
	}
	return out, nil
}

// ResetPassword completes the reset flow with the token from the email.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (MessageResponse, error) {
	payload := map[string]string{"token": token, "newPassword": newPassword}

	resp, err := c.api.POST("/auth/reset-password").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(payload).
		Send()
	if err != nil {
		return MessageResponse{}, fmt.Errorf("failed to send reset-password request: %w", err)
	}

	var out MessageResponse
	if err := parseResponse(resp, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}
