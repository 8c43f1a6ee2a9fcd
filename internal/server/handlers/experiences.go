package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// experiencePageSize — размер страницы списка experiences
const experiencePageSize = 10

// ExperiencesHandler обрабатывает запросы каталога experiences и слотов
type ExperiencesHandler struct {
	logger            *slog.Logger
	experienceStorage storage.ExperienceStorage
	locationStorage   storage.LocationStorage
}

// NewExperiencesHandler создает новый handler каталога
func NewExperiencesHandler(
	logger *slog.Logger,
	experienceStorage storage.ExperienceStorage,
	locationStorage storage.LocationStorage,
) *ExperiencesHandler {
	return &ExperiencesHandler{
		logger:            logger,
		experienceStorage: experienceStorage,
		locationStorage:   locationStorage,
	}
}

// toAPI собирает wire-представление experience, подтягивая локацию
func (h *ExperiencesHandler) toAPI(r *http.Request, exp *models.Experience) api.Experience {
	out := api.Experience{
		ID:             exp.ID,
		Guide:          exp.GuideID,
		Title:          exp.Title,
		Description:    exp.Description,
		Expertise:      exp.Expertise,
		Photos:         exp.Photos,
		Languages:      exp.Languages,
		PaymentMethods: exp.PaymentMethods,
	}
	if exp.LocationID != "" {
		loc, err := h.locationStorage.GetLocationByID(r.Context(), exp.LocationID)
		if err != nil {
			h.logger.WarnContext(r.Context(), "failed to resolve location",
				slog.String("location_id", exp.LocationID), slog.Any("error", err))
		} else {
			out.Location = &api.LocationRef{ID: loc.ID, PlaceName: loc.PlaceName}
		}
	}
	return out
}

func slotToAPI(slot *models.Slot) api.Slot {
	return api.Slot{
		ID:         slot.ID,
		Experience: slot.ExperienceID,
		Date:       slot.Date,
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		Capacity:   slot.Capacity,
		Remaining:  slot.Remaining,
		Price:      slot.Price,
		IsActive:   slot.IsActive,
	}
}

// List обрабатывает GET /experiences/
// Пагинированный список с фильтрацией и сортировкой
func (h *ExperiencesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		page = p
	}

	filter := storage.ExperienceFilter{
		Ordering:      q.Get("ordering"),
		ExpertiseName: q.Get("expertise_name"),
		Offset:        (page - 1) * experiencePageSize,
		Limit:         experiencePageSize,
	}

	items, total, err := h.experienceStorage.ListExperiences(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list experiences", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	results := make([]api.Experience, 0, len(items))
	for _, exp := range items {
		results = append(results, h.toAPI(r, exp))
	}

	resp := api.Paginated[api.Experience]{
		Count:    total,
		Next:     pageURL(r, page+1, filter.Offset+len(items) < total),
		Previous: pageURL(r, page-1, page > 1),
		Results:  results,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// pageURL строит ссылку на соседнюю страницу либо nil
func pageURL(r *http.Request, page int, exists bool) *string {
	if !exists {
		return nil
	}
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// Create обрабатывает POST /experiences/
// Создание experience, только для гидов
func (h *ExperiencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, _ := GetRole(ctx)
	if role != api.RoleGuide && role != api.RoleAdmin {
		sendDetail(h.logger, w, "Only guides can create experiences.", http.StatusForbidden)
		return
	}
	guideID, _ := GetUserID(ctx)

	var req api.CreateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		sendFields(h.logger, w, map[string][]string{"title": {"title is required"}})
		return
	}

	exp := &models.Experience{
		ID:             uuid.New().String(),
		GuideID:        guideID,
		Title:          req.Title,
		Description:    req.Description,
		Expertise:      req.Expertise,
		Photos:         req.Photos,
		Languages:      req.Languages,
		PaymentMethods: req.PaymentMethods,
		LocationID:     req.LocationID,
		CreatedAt:      time.Now(),
	}

	if err := h.experienceStorage.CreateExperience(ctx, exp); err != nil {
		h.logger.ErrorContext(ctx, "failed to create experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "experience created",
		slog.String("experience_id", exp.ID),
		slog.String("guide_id", guideID))

	sendJSON(h.logger, w, h.toAPI(r, exp), http.StatusCreated)
}

// getOwned возвращает experience, проверив что caller — владелец или админ
func (h *ExperiencesHandler) getOwned(w http.ResponseWriter, r *http.Request, id string) (*models.Experience, bool) {
	ctx := r.Context()

	exp, err := h.experienceStorage.GetExperienceByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "experience not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	callerID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)
	if exp.GuideID != callerID && role != api.RoleAdmin {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return nil, false
	}

	return exp, true
}

// Get обрабатывает GET /experiences/{id}/
func (h *ExperiencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	exp, err := h.experienceStorage.GetExperienceByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "experience not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, h.toAPI(r, exp), http.StatusOK)
}

// Update обрабатывает PUT /experiences/{id}/
func (h *ExperiencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exp, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req api.CreateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		sendFields(h.logger, w, map[string][]string{"title": {"title is required"}})
		return
	}

	exp.Title = req.Title
	exp.Description = req.Description
	exp.Expertise = req.Expertise
	exp.Photos = req.Photos
	exp.Languages = req.Languages
	exp.PaymentMethods = req.PaymentMethods
	exp.LocationID = req.LocationID

	if err := h.experienceStorage.UpdateExperience(ctx, exp); err != nil {
		h.logger.ErrorContext(ctx, "failed to update experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, h.toAPI(r, exp), http.StatusOK)
}

// Patch обрабатывает PATCH /experiences/{id}/
func (h *ExperiencesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exp, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req api.PatchExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		exp.Title = *req.Title
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}
	if req.Expertise != nil {
		exp.Expertise = *req.Expertise
	}
	if req.Photos != nil {
		exp.Photos = *req.Photos
	}
	if req.Languages != nil {
		exp.Languages = *req.Languages
	}
	if req.PaymentMethods != nil {
		exp.PaymentMethods = *req.PaymentMethods
	}
	if req.LocationID != nil {
		exp.LocationID = *req.LocationID
	}

	if err := h.experienceStorage.UpdateExperience(ctx, exp); err != nil {
		h.logger.ErrorContext(ctx, "failed to update experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, h.toAPI(r, exp), http.StatusOK)
}

// Delete обрабатывает DELETE /experiences/{id}/
func (h *ExperiencesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exp, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	if err := h.experienceStorage.DeleteExperience(ctx, exp.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "experience deleted", slog.String("experience_id", exp.ID))

	w.WriteHeader(http.StatusNoContent)
}

// ListSlots обрабатывает GET /experiences/{id}/slots/
func (h *ExperiencesHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
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

	slots, err := h.experienceStorage.ListSlots(ctx, experienceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list slots", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Slot, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, slotToAPI(slot))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// validateSlotRequest проверяет поля запроса слота
func validateSlotRequest(req *api.SlotRequest) map[string][]string {
	fields := map[string][]string{}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		fields["date"] = append(fields["date"], "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		fields["start_time"] = append(fields["start_time"], "start_time must be HH:MM")
	}
	if _, err := time.Parse("15:04", req.EndTime); err != nil {
		fields["end_time"] = append(fields["end_time"], "end_time must be HH:MM")
	}
	if req.Capacity <= 0 {
		fields["capacity"] = append(fields["capacity"], "capacity must be positive")
	}
	if req.Price < 0 {
		fields["price"] = append(fields["price"], "price cannot be negative")
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CreateSlot обрабатывает POST /experiences/{id}/slots/
func (h *ExperiencesHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exp, ok := h.getOwned(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req api.SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if fields := validateSlotRequest(&req); fields != nil {
		sendFields(h.logger, w, fields)
		return
	}

	slot := &models.Slot{
		ID:           uuid.New().String(),
		ExperienceID: exp.ID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     req.Capacity,
		Remaining:    req.Capacity,
		Price:        req.Price,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := h.experienceStorage.CreateSlot(ctx, slot); err != nil {
		h.logger.ErrorContext(ctx, "failed to create slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "slot created",
		slog.String("slot_id", slot.ID),
		slog.String("experience_id", exp.ID))

	sendJSON(h.logger, w, slotToAPI(slot), http.StatusCreated)
}

// getSlotOf возвращает слот, проверив принадлежность experience
func (h *ExperiencesHandler) getSlotOf(w http.ResponseWriter, r *http.Request, experienceID, slotID string) (*models.Slot, bool) {
	ctx := r.Context()

	slot, err := h.experienceStorage.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "slot not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if slot.ExperienceID != experienceID {
		sendError(h.logger, w, "slot not found", http.StatusNotFound)
		return nil, false
	}

	return slot, true
}

// GetSlot обрабатывает GET /experiences/{id}/slots/{slotID}/
func (h *ExperiencesHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slot, ok := h.getSlotOf(w, r, r.PathValue("id"), r.PathValue("slotID"))
	if !ok {
		return
	}

	sendJSON(h.logger, w, slotToAPI(slot), http.StatusOK)
}

// UpdateSlot обрабатывает PUT /experiences/{id}/slots/{slotID}/
// Уменьшение capacity не может отнять уже забронированные места
func (h *ExperiencesHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.getOwned(w, r, r.PathValue("id")); !ok {
		return
	}
	slot, ok := h.getSlotOf(w, r, r.PathValue("id"), r.PathValue("slotID"))
	if !ok {
		return
	}

	var req api.SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if fields := validateSlotRequest(&req); fields != nil {
		sendFields(h.logger, w, fields)
		return
	}

	booked := slot.Capacity - slot.Remaining
	if req.Capacity < booked {
		msg := fmt.Sprintf("capacity cannot be below %d already booked guests", booked)
		sendFields(h.logger, w, map[string][]string{"capacity": {msg}})
		return
	}

	slot.Date = req.Date
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.Remaining = req.Capacity - booked
	slot.Capacity = req.Capacity
	slot.Price = req.Price

	if err := h.experienceStorage.UpdateSlot(ctx, slot); err != nil {
		h.logger.ErrorContext(ctx, "failed to update slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, slotToAPI(slot), http.StatusOK)
}

// DeleteSlot обрабатывает DELETE /experiences/{id}/slots/{slotID}/
func (h *ExperiencesHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.getOwned(w, r, r.PathValue("id")); !ok {
		return
	}
	slot, ok := h.getSlotOf(w, r, r.PathValue("id"), r.PathValue("slotID"))
	if !ok {
		return
	}

	if err := h.experienceStorage.DeleteSlot(ctx, slot.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
