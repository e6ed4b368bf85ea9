package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/messaging/payloads"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

const maxImportBatch = 500

// FootprintHandler — журнал замеров текущего пользователя.
type FootprintHandler struct {
	ledger    usecase.FootprintLedger
	publisher ports.FootprintSubmissionPublisher
	logger    *slog.Logger
}

// NewFootprintHandler: publisher может быть nil, тогда импорт отвечает 503.
func NewFootprintHandler(ledger usecase.FootprintLedger, publisher ports.FootprintSubmissionPublisher, logger *slog.Logger) *FootprintHandler {
	return &FootprintHandler{ledger: ledger, publisher: publisher, logger: logger}
}

// footprintRequest — value может быть числом или строкой.
type footprintRequest struct {
	Date  string          `json:"date"`
	Value json.RawMessage `json:"value"`
}

type importRequest struct {
	Entries []footprintRequest `json:"entries"`
}

type importFailure struct {
	Error     string `json:"error"`
	Queued    int    `json:"queued"`
	Remaining int    `json:"remaining"`
}

type historyResponse struct {
	Average float64                 `json:"average"`
	Entries []domain.FootprintEntry `json:"entries"`
}

// ListFootprints — GET /me/footprints
func (h *FootprintHandler) ListFootprints(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	entries, avg, err := h.ledger.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, historyResponse{Average: avg, Entries: entries}, h.logger)
}

// AppendFootprint — POST /me/footprints
func (h *FootprintHandler) AppendFootprint(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req footprintRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	date, raw, err := req.parse()
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	entry, err := h.ledger.Append(r.Context(), userID, date, raw)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, entry, h.logger)
}

// ImportFootprints — POST /footprints/import, замеры уходят в очередь и
// добавляются воркером.
func (h *FootprintHandler) ImportFootprints(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	if h.publisher == nil {
		writeError(w, r, fmt.Errorf("footprint import: %w", domain.ErrFeatureDisabled), h.logger)
		return
	}

	var req importRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}
	switch {
	case len(req.Entries) == 0:
		writeError(w, r, &domain.ValidationError{Field: "entries", Reason: "is required"}, h.logger)
		return
	case len(req.Entries) > maxImportBatch:
		writeError(w, r, &domain.ValidationError{Field: "entries", Reason: fmt.Sprintf("must not contain more than %d items", maxImportBatch)}, h.logger)
		return
	}

	// публикация начинается только после проверки всего пакета
	batch := make([]payloads.FootprintSubmissionPayload, 0, len(req.Entries))
	now := time.Now().UTC()
	for i, item := range req.Entries {
		date, raw, err := item.parse()
		if err == nil {
			_, err = domain.ParseFootprintValue(raw)
		}
		if err != nil {
			writeError(w, r, batchItemError(i, err), h.logger)
			return
		}
		batch = append(batch, payloads.FootprintSubmissionPayload{
			UserID:      userID.String(),
			Date:        date,
			Value:       raw,
			SubmittedAt: now,
		})
	}

	// очередь не транзакционна: при сбое сообщаем, сколько замеров уже ушло
	for i, p := range batch {
		if err := h.publisher.PublishFootprintSubmission(r.Context(), p); err != nil {
			h.logger.Error("failed to publish footprint submission", "user_id", userID, "published", i, "error", err)
			respondWithJSON(w, http.StatusInternalServerError, importFailure{
				Error:     "failed to queue footprint import",
				Queued:    i,
				Remaining: len(batch) - i,
			}, h.logger)
			return
		}
	}

	h.logger.Info("footprint import queued", "user_id", userID, "count", len(batch))
	respondWithJSON(w, http.StatusAccepted, map[string]int{"queued": len(batch)}, h.logger)
}

// batchItemError переносит ошибку элемента на поле с его индексом.
func batchItemError(i int, err error) error {
	var (
		validationErr *domain.ValidationError
		invalidValue  *domain.InvalidValueError
	)
	switch {
	case errors.As(err, &validationErr):
		return &domain.ValidationError{Field: fmt.Sprintf("entries[%d].%s", i, validationErr.Field), Reason: validationErr.Reason}
	case errors.As(err, &invalidValue):
		return &domain.ValidationError{Field: fmt.Sprintf("entries[%d].value", i), Reason: invalidValue.Reason}
	default:
		return err
	}
}

func (req footprintRequest) parse() (time.Time, string, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return time.Time{}, "", err
	}
	raw, err := rawValue(req.Value)
	if err != nil {
		return time.Time{}, "", err
	}
	return date, raw, nil
}

// parseDate принимает RFC 3339 или Y-m-d; пустая строка означает "сейчас".
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, domain.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{Field: "date", Reason: "must be a valid date"}
}

// rawValue приводит JSON-значение к строке для единообразного разбора в журнале.
func rawValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", &domain.InvalidValueError{Value: string(raw), Reason: "must be a number"}
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", &domain.InvalidValueError{Value: string(raw), Reason: "must be a number"}
	}
	return n.String(), nil
}
