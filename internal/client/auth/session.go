package auth

import (
	"context"
	"errors"
	"sync"

	clientapi "github.com/iudanet/urugendo/internal/client/api"
	"github.com/iudanet/urugendo/internal/client/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// State определяет состояние сессии
type State int

// Состояния сессии. До завершения Bootstrap сессия находится в
// StateLoading: guard'ы не должны ни пускать, ни отказывать.
const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session — единственный владелец аутентифицированной identity клиента.
// Токены живут в durable storage, текущий пользователь — в памяти;
// инвариант: user != nil тогда и только тогда, когда state == StateAuthenticated.
// Session реализует api.TokenSource и передается в HTTP транспорт явно,
// а не через глобальное состояние.
type Session struct {
	mu      sync.RWMutex
	state   State
	user    *api.User
	storage storage.AuthStorage
}

// NewSession создает сессию в состоянии loading (до Bootstrap)
func NewSession(authStorage storage.AuthStorage) *Session {
	return &Session{
		state:   StateLoading,
		storage: authStorage,
	}
}

// State возвращает текущее состояние сессии
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User возвращает копию текущего пользователя или nil
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// establish сохраняет токены и пользователя одной операцией (login)
func (s *Session) establish(ctx context.Context, tokens api.Tokens, user api.User) error {
	auth := &storage.AuthData{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
	}
	if err := s.storage.SaveAuth(ctx, auth); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.mu.Unlock()

	return nil
}

// setUser обновляет пользователя в памяти (после RefreshUser/Bootstrap)
func (s *Session) setUser(user api.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.mu.Unlock()
}

// resolveAnonymous фиксирует отсутствие сессии (bootstrap без токена)
func (s *Session) resolveAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}

// AccessToken implements api.TokenSource
func (s *Session) AccessToken(ctx context.Context) string {
	auth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return ""
	}
	return auth.AccessToken
}

// RefreshToken implements api.TokenSource
func (s *Session) RefreshToken(ctx context.Context) string {
	auth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return ""
	}
	return auth.RefreshToken
}

// SetAccessToken implements api.TokenSource: персистит ротированный
// access token до повтора исходного запроса
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	return s.storage.UpdateAccessToken(ctx, token)
}

// Clear implements api.TokenSource: атомарно удаляет оба токена и
// пользователя. Идемпотентен, безопасен без активной сессии.
func (s *Session) Clear(ctx context.Context) error {
	err := s.storage.DeleteAuth(ctx)
	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return err
	}

	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()

	return nil
}

// Compile-time check that Session implements the transport's TokenSource
var _ clientapi.TokenSource = (*Session)(nil)
