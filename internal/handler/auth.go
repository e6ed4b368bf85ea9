package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
)

// AuthHandler — регистрация, вход и выход.
type AuthHandler struct {
	auth   usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register — POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Registration
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, res, h.logger)
}

// Login — POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, res, h.logger)
}

// Logout — POST /auth/logout, отзывает все токены пользователя.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	if err := h.auth.Logout(r.Context(), userID); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"}, h.logger)
}
