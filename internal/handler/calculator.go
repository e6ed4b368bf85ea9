package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// CalculatorHandler — калькулятор углеродного следа.
type CalculatorHandler struct {
	calculator usecase.CalculatorUseCase
	logger     *slog.Logger
}

func NewCalculatorHandler(calculator usecase.CalculatorUseCase, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator, logger: logger}
}

// Options — GET /calculator/options
func (h *CalculatorHandler) Options(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.calculator.Options(), h.logger)
}

// Submit — POST /calculator
func (h *CalculatorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var form domain.CalculatorForm
	if !bindJSON(w, r, &form, h.logger) {
		return
	}

	res, err := h.calculator.Submit(r.Context(), userID, form)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, res, h.logger)
}
