package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/urugendo/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой в поле error
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Error: message}, statusCode)
}

// sendDetail отправляет JSON ответ с ошибкой в поле detail
// (permission-ошибки в стиле DRF)
func sendDetail(logger *slog.Logger, w http.ResponseWriter, detail string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Detail: detail}, statusCode)
}

// sendFields отправляет ошибки валидации по полям
func sendFields(logger *slog.Logger, w http.ResponseWriter, fields map[string][]string) {
	sendJSON(logger, w, api.ErrorResponse{Fields: fields}, http.StatusBadRequest)
}
