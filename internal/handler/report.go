package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// ReportHandler — выгрузка истории в CSV.
type ReportHandler struct {
	reports usecase.ReportUseCase
	logger  *slog.Logger
}

func NewReportHandler(reports usecase.ReportUseCase, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Export — POST /me/report
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.reports.Export(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, res, h.logger)
}
