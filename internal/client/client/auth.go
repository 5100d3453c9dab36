package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/preranah7/archweekly/internal/client/models"
)

// SendOTP asks the backend to email a one-time code to email.
func (c *Client) SendOTP(ctx context.Context, email string) (*models.OTPResponse, error) {
	var out models.OTPResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/send-otp", nil, map[string]string{"email": email}, &out)
	if err != nil {
		return nil, fmt.Errorf("send otp: %w", err)
	}
	return &out, nil
}

// VerifyOTP exchanges an email and code for a token and user.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", nil, map[string]string{"email": email, "otp": otp}, &out)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	return &out, nil
}

// Me returns the user owning the current bearer token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.MeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("who am i: %w", err)
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
