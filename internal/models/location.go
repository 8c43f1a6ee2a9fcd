package models

// Location представляет сохраненную геолокацию.
// Координаты хранятся строками, как отдает провайдер геокодирования.
type Location struct {
	ID        string `json:"id"` // UUID
	PlaceName string `json:"place_name"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	PlaceID   string `json:"place_id"` // идентификатор места у провайдера
}

// ChoiceOption представляет элемент справочника
type ChoiceOption struct {
	ID   string `json:"id"` // UUID
	Name string `json:"name"`
}
