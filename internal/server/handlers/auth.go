package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/email"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/internal/validation"
	"github.com/iudanet/urugendo/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	emailSender  email.Sender
	jwtConfig    JWTConfig
	baseURL      string // внешний адрес сервера для ссылок в письмах
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	tokenStorage storage.TokenStorage,
	emailSender email.Sender,
	jwtConfig JWTConfig,
	baseURL string,
) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		emailSender:  emailSender,
		jwtConfig:    jwtConfig,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// Register обрабатывает POST /users/auth/create/
// Регистрация нового пользователя. Аккаунт создается неактивным,
// активация — по ссылке из письма.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация по полям
	fields := map[string][]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		fields["username"] = append(fields["username"], err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields["email"] = append(fields["email"], err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fields["password"] = append(fields["password"], err.Error())
	}
	if req.Password != req.ConfirmPassword {
		fields["confirm_password"] = append(fields["confirm_password"], "passwords do not match")
	}
	// Admin выдается только вручную
	if req.Role != api.RoleTourist && req.Role != api.RoleGuide {
		fields["role"] = append(fields["role"], "role must be Tourist or Guide")
	}
	if len(fields) > 0 {
		h.logger.WarnContext(ctx, "register validation failed", slog.String("username", req.Username))
		sendFields(h.logger, w, fields)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     false,
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			sendError(h.logger, w, "username or email already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.sendVerificationEmail(ctx, user); err != nil {
		// Пользователь создан; письмо можно запросить повторно
		h.logger.ErrorContext(ctx, "failed to send verification email", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", req.Username),
		slog.String("user_id", user.ID))

	resp := api.MessageResponse{
		Message: "Registration successful. Check your email to verify your account.",
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// sendVerificationEmail генерирует ссылку подтверждения и отправляет письмо
func (h *AuthHandler) sendVerificationEmail(ctx context.Context, user *models.User) error {
	token, err := GenerateVerificationToken(h.jwtConfig, user.ID)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/users/auth/verify-email/%s/%s/", h.baseURL, user.ID, token)
	return h.emailSender.SendVerification(ctx, user.Email, verifyURL)
}

// VerifyEmail обрабатывает GET /users/auth/verify-email/{uid}/{token}/
// Активация аккаунта по ссылке из письма
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uid := r.PathValue("uid")
	token := r.PathValue("token")
	if uid == "" || token == "" {
		sendError(h.logger, w, "invalid verification link", http.StatusBadRequest)
		return
	}

	userID, err := ValidateVerificationToken(h.jwtConfig, token)
	if err != nil || userID != uid {
		h.logger.WarnContext(ctx, "invalid verification token", slog.Any("error", err))
		sendError(h.logger, w, "invalid or expired verification link", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !user.IsActive {
		user.IsActive = true
		if err := h.userStorage.UpdateUser(ctx, user); err != nil {
			h.logger.ErrorContext(ctx, "failed to activate user", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.logger.InfoContext(ctx, "email verified", slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Email verified successfully."}, http.StatusOK)
}

// ResendVerification обрабатывает POST /users/auth/resend-verification-email/
// Повторная отправка письма подтверждения
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Не раскрываем, существует ли адрес
			sendJSON(h.logger, w, api.MessageResponse{Message: "If the address is registered, a verification email was sent."}, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if user.IsActive {
		sendError(h.logger, w, "email is already verified", http.StatusBadRequest)
		return
	}

	if err := h.sendVerificationEmail(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to send verification email", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "If the address is registered, a verification email was sent."}, http.StatusOK)
}

// Login обрабатывает POST /users/auth/login/
// Аутентификация по email или username
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Identifier == "" || req.Password == "" {
		sendError(h.logger, w, "identifier and password are required", http.StatusBadRequest)
		return
	}

	// 1. Ищем пользователя: сначала по email, затем по username
	user, err := h.userStorage.GetUserByEmail(ctx, req.Identifier)
	if errors.Is(err, storage.ErrUserNotFound) {
		user, err = h.userStorage.GetUserByUsername(ctx, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("identifier", req.Identifier))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 2. Проверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("identifier", req.Identifier))
		sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// 3. Неподтвержденный email блокирует вход
	if !user.IsActive {
		h.logger.WarnContext(ctx, "login failed: email not verified", slog.String("user_id", user.ID))
		sendError(h.logger, w, "email is not verified", http.StatusForbidden)
		return
	}

	// 4. Выпускаем токены
	accessToken, _, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username, string(user.Role))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, expiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Не критичная ошибка, логируем но не прерываем
	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)))

	resp := api.AuthResponse{
		Tokens: api.Tokens{
			Access:  accessToken,
			Refresh: refreshToken,
		},
		User: user.Public(),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /users/auth/token/refresh/
// Обновление access token по refresh token. Refresh token не ротируется:
// клиент хранит его до logout либо истечения срока.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Refresh == "" {
		sendError(h.logger, w, "refresh token is required", http.StatusBadRequest)
		return
	}

	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if time.Now().After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		// Протухший токен больше не нужен
		if err := h.tokenStorage.DeleteRefreshToken(ctx, req.Refresh); err != nil {
			h.logger.WarnContext(ctx, "failed to delete expired token", slog.Any("error", err))
		}
		sendError(h.logger, w, "refresh token expired", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	newAccessToken, _, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username, string(user.Role))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token refreshed", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.RefreshResponse{Access: newAccessToken}, http.StatusOK)
}

// Me обрабатывает GET /users/me/
// Возвращает текущего пользователя по access token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, user.Public(), http.StatusOK)
}

// Logout обрабатывает POST /users/auth/logout/
// Удаляет все refresh tokens пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deletedCount, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deletedCount))

	w.WriteHeader(http.StatusNoContent)
}
