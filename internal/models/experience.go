package models

import "time"

// Experience представляет тур-опыт, предлагаемый гидом
type Experience struct {
	ID             string    `json:"id"`       // UUID
	GuideID        string    `json:"guide_id"` // UUID гида-владельца
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Expertise      []string  `json:"expertise"` // имена направлений
	Photos         []string  `json:"photos"`    // URL фотографий
	Languages      []string  `json:"languages"`
	PaymentMethods []string  `json:"payment_methods"`
	LocationID     string    `json:"location_id,omitempty"` // UUID локации
	CreatedAt      time.Time `json:"created_at"`
}

// Slot представляет временной слот experience.
// Remaining уменьшается при бронировании и не может уйти ниже нуля.
type Slot struct {
	ID           string    `json:"id"`            // UUID
	ExperienceID string    `json:"experience_id"` // UUID experience
	Date         string    `json:"date"`          // YYYY-MM-DD
	StartTime    string    `json:"start_time"`    // HH:MM
	EndTime      string    `json:"end_time"`      // HH:MM
	Capacity     int       `json:"capacity"`
	Remaining    int       `json:"remaining"`
	Price        float64   `json:"price"` // цена за гостя
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
