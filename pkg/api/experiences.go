package api

// LocationRef представляет краткую ссылку на локацию внутри experience
type LocationRef struct {
	ID        string `json:"id"`
	PlaceName string `json:"place_name"`
}

// Experience представляет тур-опыт, предлагаемый гидом
type Experience struct {
	ID             string       `json:"id"`    // UUID
	Guide          string       `json:"guide"` // UUID гида-владельца
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Expertise      []string     `json:"expertise"` // имена направлений
	Photos         []string     `json:"photos"`    // URL фотографий
	Languages      []string     `json:"languages"`
	PaymentMethods []string     `json:"payment_methods"`
	Location       *LocationRef `json:"location,omitempty"`
}

// CreateExperienceRequest представляет запрос на создание/полное
// обновление experience
type CreateExperienceRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Expertise      []string `json:"expertise"`
	Photos         []string `json:"photos"`
	Languages      []string `json:"languages"`
	PaymentMethods []string `json:"payment_methods"`
	LocationID     string   `json:"location_id,omitempty"`
}

// PatchExperienceRequest представляет частичное обновление experience
type PatchExperienceRequest struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Expertise      *[]string `json:"expertise,omitempty"`
	Photos         *[]string `json:"photos,omitempty"`
	Languages      *[]string `json:"languages,omitempty"`
	PaymentMethods *[]string `json:"payment_methods,omitempty"`
	LocationID     *string   `json:"location_id,omitempty"`
}

// ExperienceQuery представляет параметры фильтрации списка experiences
type ExperienceQuery struct {
	Ordering      string // поле сортировки, например "title" или "-title"
	Expertise     string // фильтр по UUID направления
	ExpertiseName string // фильтр по имени направления
	Page          int    // номер страницы (1-based, 0 = первая)
}

// Slot представляет временной слот experience, доступный для бронирования
type Slot struct {
	ID         string  `json:"id"`         // UUID
	Experience string  `json:"experience"` // UUID experience
	Date       string  `json:"date"`       // YYYY-MM-DD
	StartTime  string  `json:"start_time"` // HH:MM
	EndTime    string  `json:"end_time"`   // HH:MM
	Capacity   int     `json:"capacity"`
	Remaining  int     `json:"remaining_slots"`
	Price      float64 `json:"price"` // цена за гостя
	IsActive   bool    `json:"is_active"`
}

// SlotRequest представляет запрос на создание/обновление слота
type SlotRequest struct {
	Date      string  `json:"date"`       // YYYY-MM-DD
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   string  `json:"end_time"`   // HH:MM
	Capacity  int     `json:"capacity"`
	Price     float64 `json:"price"`
}
