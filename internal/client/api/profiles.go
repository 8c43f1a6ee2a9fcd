package api

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/pkg/api"
)

// CreateTouristProfile создает профиль туриста для текущего пользователя
func (c *Client) CreateTouristProfile(ctx context.Context, req api.UpdateTouristProfileRequest) (*api.TouristProfile, error) {
	var profile api.TouristProfile
	if err := c.doRequest(ctx, "POST", "/profiles/", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateGuideProfile создает профиль гида для текущего пользователя
func (c *Client) CreateGuideProfile(ctx context.Context, req api.UpdateGuideProfileRequest) (*api.GuideProfile, error) {
	var profile api.GuideProfile
	if err := c.doRequest(ctx, "POST", "/profiles/", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByID возвращает профиль пользователя.
// 404 приходит как *NotFoundError: у пользователя профиля еще нет.
func (c *Client) GetProfileByID(ctx context.Context, userID string) (*api.Profile, error) {
	var profile api.Profile
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/profiles/%s/", userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAllProfiles возвращает все профили (только для админов)
func (c *Client) GetAllProfiles(ctx context.Context) (*api.ProfileList, error) {
	var list api.ProfileList
	if err := c.doRequest(ctx, "GET", "/profiles/", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateTouristProfile обновляет профиль туриста
func (c *Client) UpdateTouristProfile(ctx context.Context, userID string, req api.UpdateTouristProfileRequest) (*api.TouristProfile, error) {
	var profile api.TouristProfile
	if err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/profiles/%s/", userID), req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateGuideProfile обновляет профиль гида
func (c *Client) UpdateGuideProfile(ctx context.Context, userID string, req api.UpdateGuideProfileRequest) (*api.GuideProfile, error) {
	var profile api.GuideProfile
	if err := c.doRequest(ctx, "PATCH", fmt.Sprintf("/profiles/%s/", userID), req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile удаляет профиль пользователя
func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/profiles/%s/", userID), nil, nil); err != nil {
		return fmt.Errorf("delete profile request failed: %w", err)
	}
	return nil
}
