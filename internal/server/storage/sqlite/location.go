package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

// SaveLocation stores a geocoded location, replacing an existing record
// with the same provider place ID. The caller keeps the ID actually
// stored: on conflict the original row's ID survives.
func (s *Storage) SaveLocation(ctx context.Context, loc *models.Location) error {
	query := `
		INSERT INTO locations (id, place_name, latitude, longitude, place_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (place_id) DO UPDATE SET
			place_name = excluded.place_name,
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`

	_, err := s.db.ExecContext(ctx, query,
		loc.ID, loc.PlaceName, loc.Latitude, loc.Longitude, loc.PlaceID)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}

	// возвращаем вызывающему фактический ID строки
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM locations WHERE place_id = ?`, loc.PlaceID,
	).Scan(&loc.ID)
	if err != nil {
		return fmt.Errorf("failed to get saved location id: %w", err)
	}

	return nil
}

// GetLocationByID retrieves location by ID
func (s *Storage) GetLocationByID(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT id, place_name, latitude, longitude, place_id
		FROM locations WHERE id = ?`

	loc := &models.Location{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&loc.ID, &loc.PlaceName, &loc.Latitude, &loc.Longitude, &loc.PlaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

// ListChoices returns catalog options of the given kind ordered by name
func (s *Storage) ListChoices(ctx context.Context, kind string) ([]*models.ChoiceOption, error) {
	query := `SELECT id, name FROM choices WHERE kind = ? ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	defer rows.Close()

	var options []*models.ChoiceOption
	for rows.Next() {
		option := &models.ChoiceOption{}
		if err := rows.Scan(&option.ID, &option.Name); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		options = append(options, option)
	}

	return options, rows.Err()
}
