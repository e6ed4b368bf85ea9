package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
)

const maxBodyBytes = 1 << 20

// errorResponse — тело ответа с ошибкой. Field заполняется для ошибок проверки.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{Error: message}, logger)
}

// writeError переводит ошибку предметной области в HTTP-статус.
// Неизвестные ошибки пишутся в лог, клиент получает только общее сообщение.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var (
		validationErr *domain.ValidationError
		invalidValue  *domain.InvalidValueError
	)
	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Field: validationErr.Field}, logger)
	case errors.As(err, &invalidValue):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: invalidValue.Error(), Field: "value"}, logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), logger)
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated.", logger)
	case errors.Is(err, domain.ErrFeatureDisabled):
		respondWithError(w, http.StatusServiceUnavailable, err.Error(), logger)
	case errors.Is(err, domain.ErrUpstream):
		logger.Warn("upstream failure", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusBadGateway, "upstream service unavailable", logger)
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}

// errMalformedBody — тело запроса не является корректным JSON.
type errMalformedBody struct{ cause error }

func (e errMalformedBody) Error() string { return fmt.Sprintf("malformed JSON body: %v", e.cause) }

// decodeJSON читает тело запроса в dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errMalformedBody{cause: errors.New("empty body")}
		}
		return errMalformedBody{cause: err}
	}
	return nil
}

// bindJSON декодирует тело и сам отвечает 400 при ошибке.
func bindJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger *slog.Logger) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		logger.Warn("bad request body", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), logger)
		return false
	}
	return true
}
