package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

const bookingColumns = `id, traveler_id, slot_id, guests, experience_title,
	price_per_guest, total_price, status, created_at, updated_at`

// CreateBooking stores a booking and decrements the slot's remaining
// capacity in the same transaction.
func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Забираем места в слоте; условие remaining >= guests
	// делает проверку вместимости атомарной
	result, err := tx.ExecContext(ctx,
		`UPDATE slots SET remaining = remaining - ?
		 WHERE id = ? AND is_active = 1 AND remaining >= ?`,
		booking.Guests, booking.SlotID, booking.Guests,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve slot capacity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// слот не существует, неактивен либо не вмещает гостей
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM slots WHERE id = ?`, booking.SlotID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check slot: %w", err)
		}
		if exists == 0 {
			return storage.ErrNotFound
		}
		return storage.ErrSlotFull
	}

	// 2. Сохраняем бронирование
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		booking.ID,
		booking.TravelerID,
		booking.SlotID,
		booking.Guests,
		booking.ExperienceTitle,
		booking.PricePerGuest,
		booking.TotalPrice,
		string(booking.Status),
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	booking := &models.Booking{}
	var status string

	err := row.Scan(
		&booking.ID,
		&booking.TravelerID,
		&booking.SlotID,
		&booking.Guests,
		&booking.ExperienceTitle,
		&booking.PricePerGuest,
		&booking.TotalPrice,
		&status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatus(status)
	return booking, nil
}

// GetBookingByID retrieves booking by ID
func (s *Storage) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (s *Storage) listBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// ListBookingsByTraveler returns bookings made by a traveler
func (s *Storage) ListBookingsByTraveler(ctx context.Context, travelerID string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE traveler_id = ? ORDER BY created_at DESC`
	return s.listBookings(ctx, query, travelerID)
}

// ListBookingsBySlot returns bookings of a slot
func (s *Storage) ListBookingsBySlot(ctx context.Context, slotID string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE slot_id = ? ORDER BY created_at DESC`
	return s.listBookings(ctx, query, slotID)
}

// ListBookingsByGuide returns bookings of all slots belonging to the
// guide's experiences
func (s *Storage) ListBookingsByGuide(ctx context.Context, guideID string) ([]*models.Booking, error) {
	query := `
		SELECT b.id, b.traveler_id, b.slot_id, b.guests, b.experience_title,
			b.price_per_guest, b.total_price, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN slots sl ON sl.id = b.slot_id
		JOIN experiences e ON e.id = sl.experience_id
		WHERE e.guide_id = ?
		ORDER BY b.created_at DESC
	`
	return s.listBookings(ctx, query, guideID)
}

// ListAllBookings returns every booking
func (s *Storage) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return s.listBookings(ctx, query)
}

// UpdateBookingStatus changes the booking status
func (s *Storage) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = datetime('now') WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return requireAffected(result, storage.ErrNotFound)
}

// DeleteBooking deletes booking and returns its guests to the slot
func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var slotID string
	var guests int
	err = tx.QueryRowContext(ctx,
		`SELECT slot_id, guests FROM bookings WHERE id = ?`, id,
	).Scan(&slotID, &guests)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	// возвращаем места, не превышая вместимость слота
	_, err = tx.ExecContext(ctx,
		`UPDATE slots SET remaining = MIN(capacity, remaining + ?) WHERE id = ?`,
		guests, slotID,
	)
	if err != nil {
		return fmt.Errorf("failed to release slot capacity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking delete: %w", err)
	}

	return nil
}
