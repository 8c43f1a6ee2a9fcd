package models

import "time"

// Review представляет отзыв туриста об experience
type Review struct {
	ID           string    `json:"id"`            // UUID
	ExperienceID string    `json:"experience_id"` // UUID experience
	TravelerID   string    `json:"traveler_id"`   // UUID автора
	Rating       int       `json:"rating"`        // 1..5
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
