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

// BookingsHandler обрабатывает запросы бронирований
type BookingsHandler struct {
	logger            *slog.Logger
	bookingStorage    storage.BookingStorage
	experienceStorage storage.ExperienceStorage
	userStorage       storage.UserStorage
}

// NewBookingsHandler создает новый handler бронирований
func NewBookingsHandler(
	logger *slog.Logger,
	bookingStorage storage.BookingStorage,
	experienceStorage storage.ExperienceStorage,
	userStorage storage.UserStorage,
) *BookingsHandler {
	return &BookingsHandler{
		logger:            logger,
		bookingStorage:    bookingStorage,
		experienceStorage: experienceStorage,
		userStorage:       userStorage,
	}
}

// toAPI собирает wire-представление бронирования со слотом и именем туриста
func (h *BookingsHandler) toAPI(r *http.Request, booking *models.Booking) api.Booking {
	ctx := r.Context()

	out := api.Booking{
		ID:              booking.ID,
		Traveler:        booking.TravelerID,
		Guests:          booking.Guests,
		ExperienceTitle: booking.ExperienceTitle,
		PricePerGuest:   booking.PricePerGuest,
		TotalPrice:      booking.TotalPrice,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       booking.UpdatedAt.Format(time.RFC3339),
	}

	if slot, err := h.experienceStorage.GetSlotByID(ctx, booking.SlotID); err == nil {
		s := slotToAPI(slot)
		out.Slot = &s
		out.ExperienceID = slot.ExperienceID
	} else {
		h.logger.WarnContext(ctx, "failed to resolve booking slot",
			slog.String("slot_id", booking.SlotID), slog.Any("error", err))
	}

	if traveler, err := h.userStorage.GetUserByID(ctx, booking.TravelerID); err == nil {
		out.TravelerName = traveler.FirstName + " " + traveler.LastName
	}

	return out
}

func (h *BookingsHandler) sendBookings(w http.ResponseWriter, r *http.Request, bookings []*models.Booking) {
	resp := make([]api.Booking, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, h.toAPI(r, booking))
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /bookings/
// Бронирование слота, только для туристов
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, _ := GetRole(ctx)
	if role != api.RoleTourist {
		sendDetail(h.logger, w, "Only tourists can book experiences.", http.StatusForbidden)
		return
	}
	travelerID, _ := GetUserID(ctx)

	var req api.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Guests <= 0 {
		sendFields(h.logger, w, map[string][]string{"guests": {"guests must be positive"}})
		return
	}

	// 1. Слот и experience нужны для snapshot-полей
	slot, err := h.experienceStorage.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "slot not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	exp, err := h.experienceStorage.GetExperienceByID(ctx, slot.ExperienceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// 2. Создаем бронирование; storage атомарно забирает места
	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		TravelerID:      travelerID,
		SlotID:          slot.ID,
		Guests:          req.Guests,
		ExperienceTitle: exp.Title,
		PricePerGuest:   slot.Price,
		TotalPrice:      slot.Price * float64(req.Guests),
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.bookingStorage.CreateBooking(ctx, booking); err != nil {
		switch {
		case errors.Is(err, storage.ErrSlotFull):
			sendFields(h.logger, w, map[string][]string{"guests": {"not enough remaining slots"}})
		case errors.Is(err, storage.ErrNotFound):
			sendError(h.logger, w, "slot not found", http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to create booking", slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", booking.ID),
		slog.String("slot_id", slot.ID),
		slog.Int("guests", req.Guests))

	sendJSON(h.logger, w, h.toAPI(r, booking), http.StatusCreated)
}

// listFor возвращает бронирования, видимые текущему пользователю
func (h *BookingsHandler) listFor(r *http.Request) ([]*models.Booking, error) {
	ctx := r.Context()
	userID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)

	switch role {
	case api.RoleAdmin:
		return h.bookingStorage.ListAllBookings(ctx)
	case api.RoleGuide:
		return h.bookingStorage.ListBookingsByGuide(ctx, userID)
	default:
		return h.bookingStorage.ListBookingsByTraveler(ctx, userID)
	}
}

// List обрабатывает GET /bookings/
// Турист видит свои брони, гид — брони своих experiences, админ — все
func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.listFor(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list bookings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendBookings(w, r, bookings)
}

// filterByDate оставляет брони со слотом до/после сегодняшней даты
func (h *BookingsHandler) filterByDate(r *http.Request, bookings []*models.Booking, upcoming bool) []*models.Booking {
	today := time.Now().Format("2006-01-02")

	filtered := make([]*models.Booking, 0, len(bookings))
	for _, booking := range bookings {
		slot, err := h.experienceStorage.GetSlotByID(r.Context(), booking.SlotID)
		if err != nil {
			continue
		}
		if upcoming == (slot.Date >= today) {
			filtered = append(filtered, booking)
		}
	}
	return filtered
}

// Upcoming обрабатывает GET /bookings/upcoming/
func (h *BookingsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.listFor(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list bookings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendBookings(w, r, h.filterByDate(r, bookings, true))
}

// Past обрабатывает GET /bookings/past/
func (h *BookingsHandler) Past(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.listFor(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list bookings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendBookings(w, r, h.filterByDate(r, bookings, false))
}

// BySlot обрабатывает GET /bookings/slot/{slotID}/
// Брони слота видит гид-владелец либо админ
func (h *BookingsHandler) BySlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slotID := r.PathValue("slotID")

	slot, err := h.experienceStorage.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "slot not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get slot", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	exp, err := h.experienceStorage.GetExperienceByID(ctx, slot.ExperienceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get experience", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	callerID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)
	if exp.GuideID != callerID && role != api.RoleAdmin {
		sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
		return
	}

	bookings, err := h.bookingStorage.ListBookingsBySlot(ctx, slotID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list slot bookings", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendBookings(w, r, bookings)
}

// getVisible возвращает бронирование, доступное текущему пользователю
func (h *BookingsHandler) getVisible(w http.ResponseWriter, r *http.Request, id string) (*models.Booking, bool) {
	ctx := r.Context()

	booking, err := h.bookingStorage.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "booking not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get booking", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}

	callerID, _ := GetUserID(ctx)
	role, _ := GetRole(ctx)
	if booking.TravelerID == callerID || role == api.RoleAdmin {
		return booking, true
	}

	// гид видит брони своих слотов
	if role == api.RoleGuide {
		if slot, err := h.experienceStorage.GetSlotByID(ctx, booking.SlotID); err == nil {
			if exp, err := h.experienceStorage.GetExperienceByID(ctx, slot.ExperienceID); err == nil && exp.GuideID == callerID {
				return booking, true
			}
		}
	}

	sendDetail(h.logger, w, "You do not have permission to perform this action.", http.StatusForbidden)
	return nil, false
}

// Get обрабатывает GET /bookings/{id}/
func (h *BookingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.getVisible(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	sendJSON(h.logger, w, h.toAPI(r, booking), http.StatusOK)
}

// Patch обрабатывает PATCH /bookings/{id}/
// Смена статуса: турист может отменить свою бронь, гид и админ —
// любой переход
func (h *BookingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booking, ok := h.getVisible(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	var req api.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	status := models.BookingStatus(req.Status)
	if !status.Valid() {
		sendFields(h.logger, w, map[string][]string{"status": {"unknown status"}})
		return
	}

	role, _ := GetRole(ctx)
	callerID, _ := GetUserID(ctx)
	if role == api.RoleTourist && !(booking.TravelerID == callerID && status == models.BookingCancelled) {
		sendDetail(h.logger, w, "Tourists can only cancel their own bookings.", http.StatusForbidden)
		return
	}

	if err := h.bookingStorage.UpdateBookingStatus(ctx, booking.ID, status); err != nil {
		h.logger.ErrorContext(ctx, "failed to update booking status", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()

	h.logger.InfoContext(ctx, "booking status updated",
		slog.String("booking_id", booking.ID),
		slog.String("status", string(status)))

	sendJSON(h.logger, w, h.toAPI(r, booking), http.StatusOK)
}

// Delete обрабатывает DELETE /bookings/{id}/
// Удаление брони возвращает места в слот
func (h *BookingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booking, ok := h.getVisible(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	if err := h.bookingStorage.DeleteBooking(ctx, booking.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete booking", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "booking deleted", slog.String("booking_id", booking.ID))

	w.WriteHeader(http.StatusNoContent)
}
