package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clientapi "github.com/iudanet/urugendo/internal/client/api"
	"github.com/iudanet/urugendo/internal/client/storage"
	pkgapi "github.com/iudanet/urugendo/pkg/api"
)

// Service предоставляет операции жизненного цикла сессии:
// login, register, logout, bootstrap, refreshUser
type Service struct {
	apiClient *clientapi.Client
	session   *Session
}

// NewService создает новый сервис авторизации
func NewService(apiClient *clientapi.Client, session *Session) *Service {
	return &Service{
		apiClient: apiClient,
		session:   session,
	}
}

// Session возвращает контейнер состояния сессии (для guard'ов и транспорта)
func (s *Service) Session() *Session {
	return s.session
}

// Login выполняет аутентификацию по email или username.
// При успехе сохраняет пару токенов и пользователя; при ошибке
// не оставляет частичного состояния.
func (s *Service) Login(ctx context.Context, identifier, password string) (*pkgapi.User, error) {
	if identifier == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	// 1. Аутентифицируемся на сервере
	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}

	// 2. Атомарно сохраняем токены и пользователя
	if err := s.session.establish(ctx, resp.Tokens, resp.User); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Debug("login successful", "username", resp.User.Username, "role", resp.User.Role)

	user := resp.User
	return &user, nil
}

// Register регистрирует нового пользователя.
// Вызывающий не аутентифицируется: сервер отправляет письмо с
// подтверждением, войти можно только после верификации email.
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) error {
	return s.apiClient.Register(ctx, req)
}

// Logout синхронно удаляет оба токена и пользователя.
// Идемпотентен: повторный вызов без активной сессии безопасен.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// RefreshUser перечитывает текущего пользователя с сервера.
// Используется после изменения профиля для ресинхронизации derived
// состояния (роль, аватар).
func (s *Service) RefreshUser(ctx context.Context) (*pkgapi.User, error) {
	user, err := s.apiClient.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	s.session.setUser(*user)

	// Обновляем identity-поля в сохраненной сессии, не трогая токены
	if auth, err := s.session.storage.GetAuth(ctx); err == nil {
		auth.UserID = user.ID
		auth.Username = user.Username
		auth.Role = user.Role
		if err := s.session.storage.SaveAuth(ctx, auth); err != nil {
			slog.Warn("failed to update stored identity", "error", err)
		}
	}

	return user, nil
}

// Bootstrap вызывается один раз при старте приложения.
// Если сохраненный access token есть — пробуем получить текущего
// пользователя; любая ошибка здесь означает logout, а не падение:
// приложение продолжает работать как неаутентифицированное.
func (s *Service) Bootstrap(ctx context.Context) {
	auth, err := s.session.storage.GetAuth(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrAuthNotFound) {
			slog.Warn("failed to read stored session", "error", err)
		}
		s.session.resolveAnonymous()
		return
	}

	if auth.AccessToken == "" {
		s.session.resolveAnonymous()
		return
	}

	user, err := s.apiClient.GetCurrentUser(ctx)
	if err != nil {
		slog.Debug("bootstrap failed, clearing session", "error", err)
		if clearErr := s.session.Clear(ctx); clearErr != nil {
			slog.Warn("failed to clear session", "error", clearErr)
		}
		return
	}

	s.session.setUser(*user)
}
