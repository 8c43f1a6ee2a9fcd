package api

// Role определяет роль пользователя на платформе
type Role string

// Возможные роли пользователей
const (
	RoleTourist Role = "Tourist"
	RoleGuide   Role = "Guide"
	RoleAdmin   Role = "Admin"
)

// Valid проверяет, что роль входит в список известных
func (r Role) Valid() bool {
	switch r {
	case RoleTourist, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// User представляет публичные данные пользователя
type User struct {
	ID             string `json:"id"`              // UUID пользователя
	Username       string `json:"username"`        // username
	Email          string `json:"email"`           // email
	FirstName      string `json:"first_name"`      // имя
	LastName       string `json:"last_name"`       // фамилия
	Role           Role   `json:"role"`            // Tourist | Guide | Admin
	ProfilePicture string `json:"profile_picture"` // URL аватара (может быть пустым)
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            Role   `json:"role"`
}

// LoginRequest представляет запрос на аутентификацию.
// Identifier может быть email или username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Tokens представляет пару bearer-токенов
type Tokens struct {
	Access  string `json:"access"`  // JWT access token
	Refresh string `json:"refresh"` // refresh token
}

// AuthResponse представляет ответ на успешный логин
type AuthResponse struct {
	Tokens Tokens `json:"tokens"`
	User   User   `json:"user"`
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse представляет ответ с новым access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// ResendVerificationRequest представляет запрос на повторную отправку
// письма с подтверждением email
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// MessageResponse представляет ответ с информационным сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой.
// Сервер использует либо Error (auth ошибки), либо Detail (permission
// ошибки), либо Fields (ошибки валидации по полям).
type ErrorResponse struct {
	Error  string              `json:"error,omitempty"`
	Detail string              `json:"detail,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// UpdateUserRequest представляет запрос на полное обновление пользователя
type UpdateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// PatchUserRequest представляет запрос на частичное обновление пользователя.
// nil-поля не изменяются.
type PatchUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}
