package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// maxUploadSize — лимит размера загружаемого изображения
const maxUploadSize = 5 << 20 // 5 MiB

// PicturesHandler обрабатывает загрузку изображений
type PicturesHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	uploadDir   string // каталог на диске
	publicPath  string // URL-префикс раздачи, например /media
}

// NewPicturesHandler создает новый handler загрузок
func NewPicturesHandler(logger *slog.Logger, userStorage storage.UserStorage, uploadDir, publicPath string) *PicturesHandler {
	return &PicturesHandler{
		logger:      logger,
		userStorage: userStorage,
		uploadDir:   uploadDir,
		publicPath:  strings.TrimRight(publicPath, "/"),
	}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// saveImage принимает multipart-поле image и кладет файл на диск.
// Возвращает публичный URL файла.
func (h *PicturesHandler) saveImage(w http.ResponseWriter, r *http.Request, subdir string) (string, bool) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(h.logger, w, "image is too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		sendError(h.logger, w, "image file is required", http.StatusBadRequest)
		return "", false
	}
	defer func() {
		_ = file.Close()
	}()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		sendFields(h.logger, w, map[string][]string{"image": {"unsupported image format"}})
		return "", false
	}

	dir := filepath.Join(h.uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload dir", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return "", false
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload file", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return "", false
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.ErrorContext(ctx, "failed to write upload file", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return "", false
	}

	h.logger.InfoContext(ctx, "image uploaded",
		slog.String("subdir", subdir),
		slog.String("file", name),
		slog.Int64("size", header.Size))

	return fmt.Sprintf("%s/%s/%s", h.publicPath, subdir, name), true
}

// UploadProfile обрабатывает POST /pictures/upload/profile/
// Загружает аватар и привязывает его к текущему пользователю
func (h *PicturesHandler) UploadProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	url, ok := h.saveImage(w, r, "profile")
	if !ok {
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	user.ProfilePicture = url
	if err := h.userStorage.UpdateUser(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to update profile picture", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.UploadResponse{URL: url}, http.StatusCreated)
}

// UploadExperience обрабатывает POST /pictures/upload/experience/
// Загружает фото experience; привязка к experience — через PATCH photos
func (h *PicturesHandler) UploadExperience(w http.ResponseWriter, r *http.Request) {
	url, ok := h.saveImage(w, r, "experience")
	if !ok {
		return
	}

	sendJSON(h.logger, w, api.UploadResponse{URL: url}, http.StatusCreated)
}
