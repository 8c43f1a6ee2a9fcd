package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/geocode"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

// LocationsHandler обрабатывает геокодирование, сохранение локаций
// и справочники
type LocationsHandler struct {
	logger          *slog.Logger
	locationStorage storage.LocationStorage
	geocoder        geocode.Geocoder
}

// NewLocationsHandler создает новый handler локаций
func NewLocationsHandler(
	logger *slog.Logger,
	locationStorage storage.LocationStorage,
	geocoder geocode.Geocoder,
) *LocationsHandler {
	return &LocationsHandler{
		logger:          logger,
		locationStorage: locationStorage,
		geocoder:        geocoder,
	}
}

// Geocode обрабатывает POST /locations/geocode/
// Разрешает название места в координаты, не сохраняя результат
func (h *LocationsHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.GeocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlaceName == "" {
		sendFields(h.logger, w, map[string][]string{"place_name": {"place_name is required"}})
		return
	}

	loc, err := h.geocoder.Geocode(ctx, req.PlaceName)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			sendError(h.logger, w, "place not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "geocoding failed",
			slog.String("place_name", req.PlaceName), slog.Any("error", err))
		sendError(h.logger, w, "geocoding service unavailable", http.StatusBadGateway)
		return
	}

	resp := api.LocationData{
		PlaceName: loc.PlaceName,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		PlaceID:   loc.PlaceID,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Save обрабатывает POST /locations/save/
// Сохраняет геокодированную локацию; повторное сохранение того же
// place_id возвращает существующую запись
func (h *LocationsHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LocationData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	fields := map[string][]string{}
	if req.PlaceName == "" {
		fields["place_name"] = append(fields["place_name"], "place_name is required")
	}
	if req.PlaceID == "" {
		fields["place_id"] = append(fields["place_id"], "place_id is required")
	}
	if len(fields) > 0 {
		sendFields(h.logger, w, fields)
		return
	}

	loc := &models.Location{
		ID:        uuid.New().String(),
		PlaceName: req.PlaceName,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PlaceID:   req.PlaceID,
	}

	if err := h.locationStorage.SaveLocation(ctx, loc); err != nil {
		h.logger.ErrorContext(ctx, "failed to save location", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.Location{
		ID:        loc.ID,
		PlaceName: loc.PlaceName,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		PlaceID:   loc.PlaceID,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Choices обрабатывает GET /choices/{kind}/
// Возвращает справочник указанного вида
func (h *LocationsHandler) Choices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := r.PathValue("kind")

	switch kind {
	case api.ChoiceLanguages, api.ChoicePayments, api.ChoiceTravelPreferences,
		api.ChoicePaymentStatuses, api.ChoiceMobileProviders:
	default:
		sendError(h.logger, w, "unknown choice kind", http.StatusNotFound)
		return
	}

	options, err := h.locationStorage.ListChoices(ctx, kind)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list choices", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.ChoiceOption, 0, len(options))
	for _, option := range options {
		resp = append(resp, api.ChoiceOption{ID: option.ID, Name: option.Name})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
