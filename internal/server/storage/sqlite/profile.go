package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

// CreateTouristProfile stores a tourist profile
func (s *Storage) CreateTouristProfile(ctx context.Context, profile *models.TouristProfile) error {
	prefs, err := encodeList(profile.TravelPreferences)
	if err != nil {
		return err
	}
	payments, err := encodeList(profile.PaymentMethods)
	if err != nil {
		return err
	}
	languages, err := encodeList(profile.Languages)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tourist_profiles (id, user_id, travel_preferences, payment_methods, languages)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		profile.ID, profile.UserID, prefs, payments, languages)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrProfileExists
		}
		return fmt.Errorf("failed to insert tourist profile: %w", err)
	}

	return nil
}

// CreateGuideProfile stores a guide profile
func (s *Storage) CreateGuideProfile(ctx context.Context, profile *models.GuideProfile) error {
	languages, err := encodeList(profile.Languages)
	if err != nil {
		return err
	}
	payments, err := encodeList(profile.PaymentMethods)
	if err != nil {
		return err
	}
	expertise, err := encodeList(profile.Expertise)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO guide_profiles (id, user_id, name, bio, languages, payment_methods, expertise, location_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Bio,
		languages,
		payments,
		expertise,
		nullableID(profile.LocationID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrProfileExists
		}
		return fmt.Errorf("failed to insert guide profile: %w", err)
	}

	return nil
}

func scanTouristProfile(row interface{ Scan(...any) error }) (*models.TouristProfile, error) {
	profile := &models.TouristProfile{}
	var prefs, payments, languages string

	err := row.Scan(&profile.ID, &profile.UserID, &prefs, &payments, &languages)
	if err != nil {
		return nil, err
	}

	if profile.TravelPreferences, err = decodeList(prefs); err != nil {
		return nil, err
	}
	if profile.PaymentMethods, err = decodeList(payments); err != nil {
		return nil, err
	}
	if profile.Languages, err = decodeList(languages); err != nil {
		return nil, err
	}

	return profile, nil
}

func scanGuideProfile(row interface{ Scan(...any) error }) (*models.GuideProfile, error) {
	profile := &models.GuideProfile{}
	var languages, payments, expertise string
	var locationID sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Bio,
		&languages,
		&payments,
		&expertise,
		&locationID,
	)
	if err != nil {
		return nil, err
	}

	if profile.Languages, err = decodeList(languages); err != nil {
		return nil, err
	}
	if profile.PaymentMethods, err = decodeList(payments); err != nil {
		return nil, err
	}
	if profile.Expertise, err = decodeList(expertise); err != nil {
		return nil, err
	}
	profile.LocationID = locationID.String

	return profile, nil
}

// GetTouristProfile retrieves tourist profile by user ID
func (s *Storage) GetTouristProfile(ctx context.Context, userID string) (*models.TouristProfile, error) {
	query := `SELECT id, user_id, travel_preferences, payment_methods, languages
		FROM tourist_profiles WHERE user_id = ?`

	profile, err := scanTouristProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tourist profile: %w", err)
	}

	return profile, nil
}

// GetGuideProfile retrieves guide profile by user ID
func (s *Storage) GetGuideProfile(ctx context.Context, userID string) (*models.GuideProfile, error) {
	query := `SELECT id, user_id, name, bio, languages, payment_methods, expertise, location_id
		FROM guide_profiles WHERE user_id = ?`

	profile, err := scanGuideProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get guide profile: %w", err)
	}

	return profile, nil
}

// ListTouristProfiles returns all tourist profiles
func (s *Storage) ListTouristProfiles(ctx context.Context) ([]*models.TouristProfile, error) {
	query := `SELECT id, user_id, travel_preferences, payment_methods, languages
		FROM tourist_profiles ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tourist profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.TouristProfile
	for rows.Next() {
		profile, err := scanTouristProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tourist profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// ListGuideProfiles returns all guide profiles
func (s *Storage) ListGuideProfiles(ctx context.Context) ([]*models.GuideProfile, error) {
	query := `SELECT id, user_id, name, bio, languages, payment_methods, expertise, location_id
		FROM guide_profiles ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guide profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.GuideProfile
	for rows.Next() {
		profile, err := scanGuideProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guide profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpdateTouristProfile replaces tourist profile fields
func (s *Storage) UpdateTouristProfile(ctx context.Context, profile *models.TouristProfile) error {
	prefs, err := encodeList(profile.TravelPreferences)
	if err != nil {
		return err
	}
	payments, err := encodeList(profile.PaymentMethods)
	if err != nil {
		return err
	}
	languages, err := encodeList(profile.Languages)
	if err != nil {
		return err
	}

	query := `
		UPDATE tourist_profiles
		SET travel_preferences = ?, payment_methods = ?, languages = ?
		WHERE user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query, prefs, payments, languages, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update tourist profile: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// UpdateGuideProfile replaces guide profile fields
func (s *Storage) UpdateGuideProfile(ctx context.Context, profile *models.GuideProfile) error {
	languages, err := encodeList(profile.Languages)
	if err != nil {
		return err
	}
	payments, err := encodeList(profile.PaymentMethods)
	if err != nil {
		return err
	}
	expertise, err := encodeList(profile.Expertise)
	if err != nil {
		return err
	}

	query := `
		UPDATE guide_profiles
		SET name = ?, bio = ?, languages = ?, payment_methods = ?,
			expertise = ?, location_id = ?
		WHERE user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		profile.Name,
		profile.Bio,
		languages,
		payments,
		expertise,
		nullableID(profile.LocationID),
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guide profile: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// DeleteProfile deletes the user's profile of either shape
func (s *Storage) DeleteProfile(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tourist_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tourist profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	result, err = s.db.ExecContext(ctx,
		`DELETE FROM guide_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete guide profile: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}
