package models

import (
	"time"

	"github.com/iudanet/urugendo/pkg/api"
)

// User представляет пользователя в системе
type User struct {
	ID             string     `json:"id"`              // UUID пользователя
	Username       string     `json:"username"`        // уникальный username
	Email          string     `json:"email"`           // уникальный email
	PasswordHash   string     `json:"-"`               // bcrypt хеш пароля
	FirstName      string     `json:"first_name"`      // имя
	LastName       string     `json:"last_name"`       // фамилия
	Role           api.Role   `json:"role"`            // Tourist | Guide | Admin
	ProfilePicture string     `json:"profile_picture"` // URL аватара
	IsActive       bool       `json:"is_active"`       // email подтвержден
	CreatedAt      time.Time  `json:"created_at"`      // время создания
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// Public возвращает wire-представление пользователя без приватных полей
func (u *User) Public() api.User {
	return api.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	Token     string    `json:"token"`      // opaque random token
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
