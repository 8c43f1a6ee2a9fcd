package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// ProfilesHandler обрабатывает запросы role-специфичных профилей
type ProfilesHandler struct {
	logger          *slog.Logger
	profileStorage  storage.ProfileStorage
	userStorage     storage.UserStorage
	locationStorage storage.LocationStorage
}

// NewProfilesHandler создает новый handler профилей
func NewProfilesHandler(
	logger *slog.Logger,
	profileStorage storage.ProfileStorage,
	userStorage storage.UserStorage,
	locationStorage storage.LocationStorage,
) *ProfilesHandler {
	return &ProfilesHandler{
		logger:          logger,
		profileStorage:  profileStorage,
		userStorage:     userStorage,
		locationStorage: locationStorage,
	}
}

func touristToAPI(p *models.TouristProfile) api.TouristProfile {
	return api.TouristProfile{
		ID:                p.ID,
		UserID:            p.UserID,
		TravelPreferences: p.TravelPreferences,
		PaymentMethods:    p.PaymentMethods,
		Languages:         p.Languages,
	}
}

func (h *ProfilesHandler) guideToAPI(r *http.Request, p *models.GuideProfile) api.GuideProfile {
	out := api.GuideProfile{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Bio:            p.Bio,
		Languages:      p.Languages,
		PaymentMethods: p.PaymentMethods,
		Expertise:      p.Expertise,
	}
	if p.LocationID != "" {
		loc, err := h.locationStorage.GetLocationByID(r.Context(), p.LocationID)
		if err != nil {
			h.logger.WarnContext(r.Context(), "failed to resolve profile location",
				slog.String("location_id", p.LocationID), slog.Any("error", err))
		} else {
			out.Location = &api.LocationRef{ID: loc.ID, PlaceName: loc.PlaceName}
		}
	}
	return out
}

// Create обрабатывает POST /profiles/
// Форма профиля определяется ролью текущего пользователя
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)

	switch role {
	case api.RoleTourist:
		var req api.UpdateTouristProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}

		profile := &models.TouristProfile{
			ID:                uuid.New().String(),
			UserID:            userID,
			TravelPreferences: req.TravelPreferences,
			PaymentMethods:    req.PaymentMethods,
			Languages:         req.Languages,
		}
		if err := h.profileStorage.CreateTouristProfile(ctx, profile); err != nil {
			if errors.Is(err, storage.ErrProfileExists) {
				sendError(h.logger, w, "profile already exists", http.StatusConflict)
				return
			}
			h.logger.ErrorContext(ctx, "failed to create tourist profile", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}

		tp := touristToAPI(profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleTourist, Tourist: &tp}, http.StatusCreated)

	case api.RoleGuide:
		var req api.UpdateGuideProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}

		profile := &models.GuideProfile{
			ID:             uuid.New().String(),
			UserID:         userID,
			Name:           req.Name,
			Bio:            req.Bio,
			Languages:      req.Languages,
			PaymentMethods: req.PaymentMethods,
			Expertise:      req.Expertise,
			LocationID:     req.Location,
		}
		if err := h.profileStorage.CreateGuideProfile(ctx, profile); err != nil {
			if errors.Is(err, storage.ErrProfileExists) {
				sendError(h.logger, w, "profile already exists", http.StatusConflict)
				return
			}
			h.logger.ErrorContext(ctx, "failed to create guide profile", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}

		gp := h.guideToAPI(r, profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleGuide, Guide: &gp}, http.StatusCreated)

	default:
		sendDetail(h.logger, w, "Admins do not have profiles.", http.StatusForbidden)
	}
}

// Get обрабатывает GET /profiles/{userID}/
// Возвращает профиль нужной формы по роли владельца
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

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

	switch user.Role {
	case api.RoleTourist:
		profile, err := h.profileStorage.GetTouristProfile(ctx, userID)
		if err != nil {
			h.sendProfileError(w, r, err)
			return
		}
		tp := touristToAPI(profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleTourist, Tourist: &tp}, http.StatusOK)

	case api.RoleGuide:
		profile, err := h.profileStorage.GetGuideProfile(ctx, userID)
		if err != nil {
			h.sendProfileError(w, r, err)
			return
		}
		gp := h.guideToAPI(r, profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleGuide, Guide: &gp}, http.StatusOK)

	case api.RoleAdmin:
		// У админов нет хранимого профиля, отдаем синтетический
		ap := api.AdminProfile{ID: userID, UserID: userID}
		sendJSON(h.logger, w, api.Profile{Role: api.RoleAdmin, Admin: &ap}, http.StatusOK)

	default:
		sendError(h.logger, w, "profile not found", http.StatusNotFound)
	}
}

func (h *ProfilesHandler) sendProfileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		sendError(h.logger, w, "profile not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "failed to get profile", slog.Any("error", err))
	sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
}

// List обрабатывает GET /profiles/
// Все профили, только для админов
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if role, _ := GetRole(ctx); role != api.RoleAdmin {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	tourists, err := h.profileStorage.ListTouristProfiles(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tourist profiles", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	guides, err := h.profileStorage.ListGuideProfiles(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list guide profiles", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ProfileList{
		Tourists: make([]api.TouristProfile, 0, len(tourists)),
		Guides:   make([]api.GuideProfile, 0, len(guides)),
	}
	for _, p := range tourists {
		resp.Tourists = append(resp.Tourists, touristToAPI(p))
	}
	for _, p := range guides {
		resp.Guides = append(resp.Guides, h.guideToAPI(r, p))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Patch обрабатывает PATCH /profiles/{userID}/
// Обновить профиль может владелец или админ
func (h *ProfilesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	if !canManage(r, userID) {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
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

	switch user.Role {
	case api.RoleTourist:
		profile, err := h.profileStorage.GetTouristProfile(ctx, userID)
		if err != nil {
			h.sendProfileError(w, r, err)
			return
		}

		var req api.UpdateTouristProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.TravelPreferences != nil {
			profile.TravelPreferences = req.TravelPreferences
		}
		if req.PaymentMethods != nil {
			profile.PaymentMethods = req.PaymentMethods
		}
		if req.Languages != nil {
			profile.Languages = req.Languages
		}

		if err := h.profileStorage.UpdateTouristProfile(ctx, profile); err != nil {
			h.logger.ErrorContext(ctx, "failed to update tourist profile", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}

		tp := touristToAPI(profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleTourist, Tourist: &tp}, http.StatusOK)

	case api.RoleGuide:
		profile, err := h.profileStorage.GetGuideProfile(ctx, userID)
		if err != nil {
			h.sendProfileError(w, r, err)
			return
		}

		var req api.UpdateGuideProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Name != "" {
			profile.Name = req.Name
		}
		if req.Bio != "" {
			profile.Bio = req.Bio
		}
		if req.Languages != nil {
			profile.Languages = req.Languages
		}
		if req.PaymentMethods != nil {
			profile.PaymentMethods = req.PaymentMethods
		}
		if req.Expertise != nil {
			profile.Expertise = req.Expertise
		}
		if req.Location != "" {
			profile.LocationID = req.Location
		}

		if err := h.profileStorage.UpdateGuideProfile(ctx, profile); err != nil {
			h.logger.ErrorContext(ctx, "failed to update guide profile", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}

		gp := h.guideToAPI(r, profile)
		sendJSON(h.logger, w, api.Profile{Role: api.RoleGuide, Guide: &gp}, http.StatusOK)

	default:
		sendDetail(h.logger, w, "Admins do not have profiles.", http.StatusForbidden)
	}
}

// Delete обрабатывает DELETE /profiles/{userID}/
func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userID")

	if !canManage(r, userID) {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	if err := h.profileStorage.DeleteProfile(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "profile not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete profile", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile deleted", slog.String("user_id", userID))

	w.WriteHeader(http.StatusNoContent)
}
