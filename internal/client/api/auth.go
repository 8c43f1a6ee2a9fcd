package api

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/pkg/api"
)

// Register регистрирует нового пользователя.
// Успех означает, что сервер отправил письмо с подтверждением email.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := c.doRequest(ctx, "POST", "/users/auth/create/", req, nil); err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	return nil
}

// Login выполняет аутентификацию по email или username
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, "POST", "/users/auth/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyEmail подтверждает email по ссылке из письма
func (c *Client) VerifyEmail(ctx context.Context, uid, token string) error {
	path := fmt.Sprintf("/users/auth/verify-email/%s/%s/", uid, token)
	if err := c.doRequest(ctx, "GET", path, nil, nil); err != nil {
		return fmt.Errorf("verify email request failed: %w", err)
	}
	return nil
}

// ResendVerificationEmail повторно отправляет письмо с подтверждением
func (c *Client) ResendVerificationEmail(ctx context.Context, email string) error {
	req := api.ResendVerificationRequest{Email: email}
	if err := c.doRequest(ctx, "POST", "/users/auth/resend-verification-email/", req, nil); err != nil {
		return fmt.Errorf("resend verification request failed: %w", err)
	}
	return nil
}

// GetCurrentUser возвращает текущего аутентифицированного пользователя
func (c *Client) GetCurrentUser(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.doRequest(ctx, "GET", "/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
