package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/internal/validation"
	"github.com/iudanet/urugendo/pkg/api"
)

// UsersHandler обрабатывает запросы управления пользователями
type UsersHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUsersHandler создает новый handler для пользователей
func NewUsersHandler(logger *slog.Logger, userStorage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// canManage проверяет, что запрос делает сам пользователь или админ
func canManage(r *http.Request, targetID string) bool {
	callerID, ok := GetUserID(r.Context())
	if !ok {
		return false
	}
	if callerID == targetID {
		return true
	}
	role, _ := GetRole(r.Context())
	return role == api.RoleAdmin
}

// List обрабатывает GET /users/all/
// Список всех пользователей, только для админов
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if role, _ := GetRole(ctx); role != api.RoleAdmin {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	users, err := h.userStorage.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.User, 0, len(users))
	for _, user := range users {
		resp = append(resp, user.Public())
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /users/{id}/
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	user, err := h.userStorage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, user.Public(), http.StatusOK)
}

// Update обрабатывает PUT /users/{id}/
// Полное обновление пользователя
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if !canManage(r, id) {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	fields := map[string][]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		fields["username"] = append(fields["username"], err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields["email"] = append(fields["email"], err.Error())
	}
	if len(fields) > 0 {
		sendFields(h.logger, w, fields)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	// Роль менять может только админ
	if role, _ := GetRole(ctx); role == api.RoleAdmin && req.Role.Valid() {
		user.Role = req.Role
	}

	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "username or email already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, user.Public(), http.StatusOK)
}

// Patch обрабатывает PATCH /users/{id}/
// Частичное обновление: nil-поля не трогаем
func (h *UsersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if !canManage(r, id) {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	var req api.PatchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			sendFields(h.logger, w, map[string][]string{"username": {err.Error()}})
			return
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			sendFields(h.logger, w, map[string][]string{"email": {err.Error()}})
			return
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}

	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "username or email already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, user.Public(), http.StatusOK)
}

// Delete обрабатывает DELETE /users/{id}/
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if !canManage(r, id) {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	if err := h.userStorage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.String("user_id", id))

	w.WriteHeader(http.StatusNoContent)
}
