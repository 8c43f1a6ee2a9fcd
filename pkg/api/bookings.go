package api

// Статусы бронирования
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
	BookingExpired   = "EXPIRED"
)

// CreateBookingRequest представляет запрос на бронирование слота
type CreateBookingRequest struct {
	SlotID string `json:"slot_id"` // UUID слота
	Guests int    `json:"guests"`  // количество гостей
}

// Booking представляет полные данные бронирования.
// Поля experience_* и price_* — snapshot на момент бронирования.
type Booking struct {
	ID              string  `json:"id"` // UUID
	Traveler        string  `json:"traveler"`
	TravelerName    string  `json:"traveler_name"`
	Slot            *Slot   `json:"slot,omitempty"`
	Guests          int     `json:"guests"`
	ExperienceID    string  `json:"experience_id"`
	ExperienceTitle string  `json:"experience_title"`
	PricePerGuest   float64 `json:"price_per_guest"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"` // RFC3339
	UpdatedAt       string  `json:"updated_at"` // RFC3339
}

// UpdateBookingRequest представляет запрос на смену статуса бронирования
type UpdateBookingRequest struct {
	Status string `json:"status"`
}
