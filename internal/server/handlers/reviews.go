package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// ReviewsHandler обрабатывает запросы отзывов
type ReviewsHandler struct {
	logger            *slog.Logger
	reviewStorage     storage.ReviewStorage
	experienceStorage storage.ExperienceStorage
	userStorage       storage.UserStorage
}

// NewReviewsHandler создает новый handler отзывов
func NewReviewsHandler(
	logger *slog.Logger,
	reviewStorage storage.ReviewStorage,
	experienceStorage storage.ExperienceStorage,
	userStorage storage.UserStorage,
) *ReviewsHandler {
	return &ReviewsHandler{
		logger:            logger,
		reviewStorage:     reviewStorage,
		experienceStorage: experienceStorage,
		userStorage:       userStorage,
	}
}

// toAPI собирает wire-представление отзыва с данными автора
func (h *ReviewsHandler) toAPI(r *http.Request, review *models.Review) api.Review {
	out := api.Review{
		ID:         review.ID,
		Experience: review.ExperienceID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  review.UpdatedAt.Format(time.RFC3339),
	}
	if traveler, err := h.userStorage.GetUserByID(r.Context(), review.TravelerID); err == nil {
		out.Traveler = traveler.Public()
	} else {
		out.Traveler = api.User{ID: review.TravelerID}
	}
	return out
}

func (h *ReviewsHandler) sendReviews(w http.ResponseWriter, r *http.Request, reviews []*models.Review) {
	resp := make([]api.Review, 0, len(reviews))
	for _, review := range reviews {
		resp = append(resp, h.toAPI(r, review))
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// validateReviewRequest проверяет рейтинг
func validateReviewRequest(req *api.ReviewRequest) map[string][]string {
	if req.Rating < 1 || req.Rating > 5 {
		return map[string][]string{"rating": {"rating must be between 1 and 5"}}
	}
	return nil
}

// Create обрабатывает POST /reviews/
// Отзыв может оставить только турист
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, _ := GetRole(ctx)
	if role != api.RoleTourist {
		sendDetail(h.logger, w, "Only tourists can leave reviews.", http.StatusForbidden)
		return
	}
	travelerID, _ := GetUserID(ctx)

	var req api.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if fields := validateReviewRequest(&req); fields != nil {
		sendFields(h.logger, w, fields)
		return
	}

	if _, err := h.experienceStorage.GetExperienceByID(ctx, req.Experience); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "experience not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	review := &models.Review{
		ID:           uuid.New().String(),
		ExperienceID: req.Experience,
		TravelerID:   travelerID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.reviewStorage.CreateReview(ctx, review); err != nil {
		h.logger.ErrorContext(ctx, "failed to create review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("experience_id", req.Experience))

	sendJSON(h.logger, w, h.toAPI(r, review), http.StatusCreated)
}

// List обрабатывает GET /reviews/
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewStorage.ListReviews(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list reviews", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendReviews(w, r, reviews)
}

// ByExperience обрабатывает GET /reviews/experience/{id}/
func (h *ReviewsHandler) ByExperience(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	experienceID := r.PathValue("id")

	if _, err := h.experienceStorage.GetExperienceByID(ctx, experienceID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "experience not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	reviews, err := h.reviewStorage.ListReviewsByExperience(ctx, experienceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list experience reviews", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendReviews(w, r, reviews)
}

// getOwned возвращает отзыв, проверив что caller — автор или админ
func (h *ReviewsHandler) getOwned(w http.ResponseWriter, r *http.Request, id string) (*models.Review, bool) {
	ctx := r.Context()

	review, err := h.reviewStorage.GetReviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "review not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	callerID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)
	if review.TravelerID != callerID && role != api.RoleAdmin {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return nil, false
	}

	return review, true
}

// Update обрабатывает PUT /reviews/{id}/
func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	review, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req api.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if fields := validateReviewRequest(&req); fields != nil {
		sendFields(h.logger, w, fields)
		return
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.UpdatedAt = time.Now()

	if err := h.reviewStorage.UpdateReview(ctx, review); err != nil {
		h.logger.ErrorContext(ctx, "failed to update review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, h.toAPI(r, review), http.StatusOK)
}

// Delete обрабатывает DELETE /reviews/{id}/
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	review, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	if err := h.reviewStorage.DeleteReview(ctx, review.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete review", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
