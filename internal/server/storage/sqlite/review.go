package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

const reviewColumns = `id, experience_id, traveler_id, rating, comment, created_at, updated_at`

// CreateReview stores a review
func (s *Storage) CreateReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		review.ID,
		review.ExperienceID,
		review.TravelerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	review := &models.Review{}
	err := row.Scan(
		&review.ID,
		&review.ExperienceID,
		&review.TravelerID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// GetReviewByID retrieves review by ID
func (s *Storage) GetReviewByID(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (s *Storage) listReviews(ctx context.Context, query string, args ...any) ([]*models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// ListReviews returns all reviews
func (s *Storage) ListReviews(ctx context.Context) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	return s.listReviews(ctx, query)
}

// ListReviewsByExperience returns reviews of an experience
func (s *Storage) ListReviewsByExperience(ctx context.Context, experienceID string) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews
		WHERE experience_id = ? ORDER BY created_at DESC`
	return s.listReviews(ctx, query, experienceID)
}

// UpdateReview replaces review fields
func (s *Storage) UpdateReview(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET rating = ?, comment = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// DeleteReview deletes review by ID
func (s *Storage) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}
