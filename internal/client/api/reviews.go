package api

import (
	"context"
	"fmt"

	"github.com/iudanet/urugendo/pkg/api"
)

// CreateReview создает отзыв
func (c *Client) CreateReview(ctx context.Context, req api.ReviewRequest) (*api.Review, error) {
	var review api.Review
	if err := c.doRequest(ctx, "POST", "/reviews/", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviews возвращает все отзывы
func (c *Client) GetReviews(ctx context.Context) ([]api.Review, error) {
	var reviews []api.Review
	if err := c.doRequest(ctx, "GET", "/reviews/", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReviewsByExperience возвращает отзывы конкретного experience
func (c *Client) GetReviewsByExperience(ctx context.Context, experienceID string) ([]api.Review, error) {
	var reviews []api.Review
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/reviews/experience/%s/", experienceID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdateReviewFull полностью обновляет отзыв
func (c *Client) UpdateReviewFull(ctx context.Context, id string, req api.ReviewRequest) (*api.Review, error) {
	var review api.Review
	if err := c.doRequest(ctx, "PUT", fmt.Sprintf("/reviews/%s/", id), req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview удаляет отзыв
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/reviews/%s/", id), nil, nil); err != nil {
		return fmt.Errorf("delete review request failed: %w", err)
	}
	return nil
}
