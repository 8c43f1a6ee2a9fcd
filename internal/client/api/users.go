package api

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/pkg/api"
)

// ListUsers возвращает всех пользователей (только для админов)
func (c *Client) ListUsers(ctx context.Context) ([]api.User, error) {
	var users []api.User
	if err := c.doRequest(ctx, "GET", "/users/all/", nil, &users); err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}
	return users, nil
}

// GetUserByID возвращает пользователя по ID
func (c *Client) GetUserByID(ctx context.Context, id string) (*api.User, error) {
	var user api.User
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/users/%s/", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFull полностью обновляет пользователя
func (c *Client) UpdateUserFull(ctx context.Context, id string, req api.UpdateUserRequest) (*api.User, error) {
	var user api.User
	if err := c.doRequest(ctx, "PUT", fmt.Sprintf("/users/%s/", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPartial частично обновляет пользователя
func (c *Client) UpdateUserPartial(ctx context.Context, id string, req api.PatchUserRequest) (*api.User, error) {
	var user api.User
	if err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/users/%s/", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет пользователя
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/users/%s/", id), nil, nil); err != nil {
		return fmt.Errorf("delete user request failed: %w", err)
	}
	return nil
}
