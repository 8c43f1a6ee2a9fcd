package handlers

import (
	"context"

	"github.com/iudanet/urugendo/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// Ключи контекста запроса, заполняются auth middleware
const (
	// UserIDKey ключ для хранения user_id в контексте
	UserIDKey contextKey = "user_id"
	// UsernameKey ключ для хранения username в контексте
	UsernameKey contextKey = "username"
	// RoleKey ключ для хранения роли в контексте
	RoleKey contextKey = "role"
)

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetRole извлекает роль из контекста запроса
func GetRole(ctx context.Context) (api.Role, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return api.Role(role), ok
}
