package storage

import (
	"context"

	"github.com/iudanet/urugendo/pkg/api"
)

// AuthStorage defines interface for storing the session state on client.
// Tokens are stored as-is under fixed keys and are always written and
// cleared together (spec: logout removes both atomically).
type AuthStorage interface {
	// SaveAuth stores the session record, replacing any previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored session record.
	// Returns ErrAuthNotFound if no session exists.
	GetAuth(ctx context.Context) (*AuthData, error)

	// UpdateAccessToken replaces only the access token of the stored
	// session (token rotation after refresh)
	UpdateAccessToken(ctx context.Context, accessToken string) error

	// DeleteAuth removes the stored session record (logout).
	// Deleting a missing record is not an error.
	DeleteAuth(ctx context.Context) error
}

// AuthData represents the persisted client session: the token pair plus
// the last known identity used to render status without a network call.
type AuthData struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Role         api.Role `json:"role"`
}
