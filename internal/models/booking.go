package models

import "time"

// BookingStatus определяет статус бронирования
type BookingStatus string

// Возможные статусы бронирования
const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingExpired   BookingStatus = "EXPIRED"
)

// Valid проверяет, что статус входит в список известных
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingExpired:
		return true
	}
	return false
}

// Booking представляет бронирование слота туристом.
// ExperienceTitle, PricePerGuest и TotalPrice — snapshot на момент
// бронирования: изменение experience задним числом не меняет прошлые брони.
type Booking struct {
	ID              string        `json:"id"`          // UUID
	TravelerID      string        `json:"traveler_id"` // UUID туриста
	SlotID          string        `json:"slot_id"`     // UUID слота
	Guests          int           `json:"guests"`
	ExperienceTitle string        `json:"experience_title"`
	PricePerGuest   float64       `json:"price_per_guest"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
