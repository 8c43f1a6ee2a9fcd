package models

// TouristProfile представляет профиль туриста.
// Справочные поля хранят UUID значений из choices.
type TouristProfile struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	TravelPreferences []string `json:"travel_preferences"`
	PaymentMethods    []string `json:"payment_methods"`
	Languages         []string `json:"languages"`
}

// GuideProfile представляет профиль гида
type GuideProfile struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	Languages      []string `json:"languages"`
	PaymentMethods []string `json:"payment_methods"`
	Expertise      []string `json:"expertise"`
	LocationID     string   `json:"location_id,omitempty"`
}
