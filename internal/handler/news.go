package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// NewsHandler — лента новостей о климате.
type NewsHandler struct {
	news   usecase.NewsUseCase
	logger *slog.Logger
}

func NewNewsHandler(news usecase.NewsUseCase, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{news: news, logger: logger}
}

// Latest — GET /news?q=&limit=
func (h *NewsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, r, &domain.ValidationError{Field: "limit", Reason: "must be a non-negative integer"}, h.logger)
			return
		}
		limit = n
	}

	articles, err := h.news.Latest(r.Context(), query, limit)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, articles, h.logger)
}
