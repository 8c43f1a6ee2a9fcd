package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

const experienceColumns = `id, guide_id, title, description, expertise, photos,
	languages, payment_methods, location_id, created_at`

// CreateExperience stores a new experience
func (s *Storage) CreateExperience(ctx context.Context, exp *models.Experience) error {
	expertise, err := encodeList(exp.Expertise)
	if err != nil {
		return err
	}
	photos, err := encodeList(exp.Photos)
	if err != nil {
		return err
	}
	languages, err := encodeList(exp.Languages)
	if err != nil {
		return err
	}
	payments, err := encodeList(exp.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO experiences (` + experienceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		exp.ID,
		exp.GuideID,
		exp.Title,
		exp.Description,
		expertise,
		photos,
		languages,
		payments,
		nullableID(exp.LocationID),
		exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert experience: %w", err)
	}

	return nil
}

// scanExperience читает строку experiences в модель
func scanExperience(row interface{ Scan(...any) error }) (*models.Experience, error) {
	exp := &models.Experience{}
	var expertise, photos, languages, payments string
	var locationID sql.NullString

	err := row.Scan(
		&exp.ID,
		&exp.GuideID,
		&exp.Title,
		&exp.Description,
		&expertise,
		&photos,
		&languages,
		&payments,
		&locationID,
		&exp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if exp.Expertise, err = decodeList(expertise); err != nil {
		return nil, err
	}
	if exp.Photos, err = decodeList(photos); err != nil {
		return nil, err
	}
	if exp.Languages, err = decodeList(languages); err != nil {
		return nil, err
	}
	if exp.PaymentMethods, err = decodeList(payments); err != nil {
		return nil, err
	}
	exp.LocationID = locationID.String

	return exp, nil
}

// GetExperienceByID retrieves experience by ID
func (s *Storage) GetExperienceByID(ctx context.Context, id string) (*models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = ?`

	exp, err := scanExperience(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return exp, nil
}

// ListExperiences returns experiences matching the filter with the
// unpaginated match count.
func (s *Storage) ListExperiences(
	ctx context.Context,
	filter storage.ExperienceFilter,
) ([]*models.Experience, int, error) {
	where := ""
	args := []any{}
	if filter.ExpertiseName != "" {
		// expertise — JSON-массив имен; ищем точное значение элемента
		where = ` WHERE EXISTS (
			SELECT 1 FROM json_each(experiences.expertise) WHERE json_each.value = ?
		)`
		args = append(args, filter.ExpertiseName)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM experiences` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count experiences: %w", err)
	}

	query := `SELECT ` + experienceColumns + ` FROM experiences` + where +
		` ORDER BY ` + orderingClause(filter.Ordering)
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	} else if filter.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var items []*models.Experience
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan experience: %w", err)
		}
		items = append(items, exp)
	}

	return items, total, rows.Err()
}

// orderingClause переводит ordering из запроса в ORDER BY.
// Неизвестные значения падают в сортировку по умолчанию.
func orderingClause(ordering string) string {
	switch ordering {
	case "title":
		return "title ASC"
	case "-title":
		return "title DESC"
	case "created_at":
		return "created_at ASC"
	case "-created_at":
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}

// UpdateExperience replaces experience fields
func (s *Storage) UpdateExperience(ctx context.Context, exp *models.Experience) error {
	expertise, err := encodeList(exp.Expertise)
	if err != nil {
		return err
	}
	photos, err := encodeList(exp.Photos)
	if err != nil {
		return err
	}
	languages, err := encodeList(exp.Languages)
	if err != nil {
		return err
	}
	payments, err := encodeList(exp.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		UPDATE experiences
		SET title = ?, description = ?, expertise = ?, photos = ?,
			languages = ?, payment_methods = ?, location_id = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		exp.Title,
		exp.Description,
		expertise,
		photos,
		languages,
		payments,
		nullableID(exp.LocationID),
		exp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update experience: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// DeleteExperience deletes experience by ID; slots go with it via FK cascade
func (s *Storage) DeleteExperience(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

const slotColumns = `id, experience_id, date, start_time, end_time,
	capacity, remaining, price, is_active, created_at`

// CreateSlot stores a new slot for an experience
func (s *Storage) CreateSlot(ctx context.Context, slot *models.Slot) error {
	query := `
		INSERT INTO slots (` + slotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		slot.ID,
		slot.ExperienceID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.Remaining,
		slot.Price,
		slot.IsActive,
		slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}

	return nil
}

func scanSlot(row interface{ Scan(...any) error }) (*models.Slot, error) {
	slot := &models.Slot{}
	err := row.Scan(
		&slot.ID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.Remaining,
		&slot.Price,
		&slot.IsActive,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// GetSlotByID retrieves slot by ID
func (s *Storage) GetSlotByID(ctx context.Context, id string) (*models.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = ?`

	slot, err := scanSlot(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return slot, nil
}

// ListSlots returns all slots of an experience ordered by date and time
func (s *Storage) ListSlots(ctx context.Context, experienceID string) ([]*models.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots
		WHERE experience_id = ? ORDER BY date, start_time`

	rows, err := s.db.QueryContext(ctx, query, experienceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []*models.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// UpdateSlot replaces slot fields
func (s *Storage) UpdateSlot(ctx context.Context, slot *models.Slot) error {
	query := `
		UPDATE slots
		SET date = ?, start_time = ?, end_time = ?, capacity = ?,
			remaining = ?, price = ?, is_active = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.Remaining,
		slot.Price,
		slot.IsActive,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// DeleteSlot deletes slot by ID
func (s *Storage) DeleteSlot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// nullableID превращает пустую строку в NULL для nullable FK-колонок
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
