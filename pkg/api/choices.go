package api

// ChoiceOption представляет элемент справочника (язык, способ оплаты,
// направление и т.д.)
type ChoiceOption struct {
	ID   string `json:"id"` // UUID
	Name string `json:"name"`
}

// Известные справочники
const (
	ChoiceLanguages         = "languages"
	ChoicePayments          = "payments"
	ChoiceTravelPreferences = "travel_preferences"
	ChoicePaymentStatuses   = "payment_statuses"
	ChoiceMobileProviders   = "mobile_providers"
)
