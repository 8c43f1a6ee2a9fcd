package api

// GeocodeRequest представляет запрос на геокодирование названия места
type GeocodeRequest struct {
	PlaceName string `json:"place_name"`
}

// LocationData представляет результат геокодирования (еще не сохраненный)
type LocationData struct {
	PlaceName string `json:"place_name"` // нормализованный адрес
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	PlaceID   string `json:"place_id"` // идентификатор места у провайдера
}

// Location представляет сохраненную локацию
type Location struct {
	ID        string `json:"id"` // UUID
	PlaceName string `json:"place_name"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	PlaceID   string `json:"place_id"`
}
