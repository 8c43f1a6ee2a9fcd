package api

import (
	"encoding/json"
	"fmt"
)

// TouristProfile представляет профиль туриста
type TouristProfile struct {
	ID                string   `json:"id"`      // UUID профиля
	UserID            string   `json:"user_id"` // UUID пользователя
	TravelPreferences []string `json:"travel_preferences"`
	PaymentMethods    []string `json:"payment_methods"`
	Languages         []string `json:"languages"`
}

// GuideProfile представляет профиль гида
type GuideProfile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Name           string       `json:"name"`
	Bio            string       `json:"bio"`
	Languages      []string     `json:"languages"`
	PaymentMethods []string     `json:"payment_methods"`
	Expertise      []string     `json:"expertise"`
	Location       *LocationRef `json:"location"`
}

// AdminProfile представляет профиль администратора
type AdminProfile struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// Profile — tagged union профилей. Форма определяется полем Role;
// доступ к role-специфичным полям только после проверки тега.
type Profile struct {
	Role    Role
	Tourist *TouristProfile
	Guide   *GuideProfile
	Admin   *AdminProfile
}

// profileEnvelope — wire-представление профиля с дискриминатором роли
type profileEnvelope struct {
	Role Role `json:"role"`
}

// UnmarshalJSON разбирает профиль по дискриминатору role
func (p *Profile) UnmarshalJSON(data []byte) error {
	var env profileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to unmarshal profile envelope: %w", err)
	}

	switch env.Role {
	case RoleTourist:
		var tp TouristProfile
		if err := json.Unmarshal(data, &tp); err != nil {
			return fmt.Errorf("failed to unmarshal tourist profile: %w", err)
		}
		*p = Profile{Role: RoleTourist, Tourist: &tp}
	case RoleGuide:
		var gp GuideProfile
		if err := json.Unmarshal(data, &gp); err != nil {
			return fmt.Errorf("failed to unmarshal guide profile: %w", err)
		}
		*p = Profile{Role: RoleGuide, Guide: &gp}
	case RoleAdmin:
		var ap AdminProfile
		if err := json.Unmarshal(data, &ap); err != nil {
			return fmt.Errorf("failed to unmarshal admin profile: %w", err)
		}
		*p = Profile{Role: RoleAdmin, Admin: &ap}
	default:
		return fmt.Errorf("unknown profile role %q", env.Role)
	}

	return nil
}

// MarshalJSON сериализует профиль в role-специфичную форму с
// дискриминатором role
func (p Profile) MarshalJSON() ([]byte, error) {
	switch p.Role {
	case RoleTourist:
		if p.Tourist == nil {
			return nil, fmt.Errorf("tourist profile is nil")
		}
		return marshalWithRole(p.Role, p.Tourist)
	case RoleGuide:
		if p.Guide == nil {
			return nil, fmt.Errorf("guide profile is nil")
		}
		return marshalWithRole(p.Role, p.Guide)
	case RoleAdmin:
		if p.Admin == nil {
			return nil, fmt.Errorf("admin profile is nil")
		}
		return marshalWithRole(p.Role, p.Admin)
	}
	return nil, fmt.Errorf("unknown profile role %q", p.Role)
}

// marshalWithRole добавляет поле role к сериализованному профилю
func marshalWithRole(role Role, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	roleJSON, err := json.Marshal(role)
	if err != nil {
		return nil, err
	}
	m["role"] = roleJSON
	return json.Marshal(m)
}

// UpdateTouristProfileRequest представляет запрос на создание/обновление
// профиля туриста. Все списки — UUID справочных значений.
type UpdateTouristProfileRequest struct {
	TravelPreferences []string `json:"travel_preferences,omitempty"`
	PaymentMethods    []string `json:"payment_methods,omitempty"`
	Languages         []string `json:"languages,omitempty"`
}

// UpdateGuideProfileRequest представляет запрос на создание/обновление
// профиля гида
type UpdateGuideProfileRequest struct {
	Name           string   `json:"name,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
	Expertise      []string `json:"expertise,omitempty"`
	Location       string   `json:"location,omitempty"` // UUID локации
}

// ProfileList представляет ответ GET /profiles/ (только для админов)
type ProfileList struct {
	Tourists []TouristProfile `json:"tourists"`
	Guides   []GuideProfile   `json:"guides"`
}
