package api

// Review представляет отзыв туриста об experience
type Review struct {
	ID         string `json:"id"`         // UUID
	Experience string `json:"experience"` // UUID experience
	Traveler   User   `json:"traveler"`   // автор отзыва
	Rating     int    `json:"rating"`     // 1..5
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"` // RFC3339
	UpdatedAt  string `json:"updated_at"` // RFC3339
}

// ReviewRequest представляет запрос на создание/обновление отзыва
type ReviewRequest struct {
	Experience string `json:"experience"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
