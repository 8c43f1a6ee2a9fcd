package api

// Paginated представляет стандартный пагинированный ответ списковых
// endpoint'ов: {count, next, previous, results}.
type Paginated[T any] struct {
	Count    int     `json:"count"`    // общее количество записей
	Next     *string `json:"next"`     // URL следующей страницы (null на последней)
	Previous *string `json:"previous"` // URL предыдущей страницы (null на первой)
	Results  []T     `json:"results"`
}
