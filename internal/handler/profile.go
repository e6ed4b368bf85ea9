package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ProfileHandler — профиль текущего пользователя и публичные профили.
type ProfileHandler struct {
	profiles usecase.ProfileUseCase
	logger   *slog.Logger
}

func NewProfileHandler(profiles usecase.ProfileUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type profileResponse struct {
	User *domain.ProfileSnapshot `json:"user"`
}

// GetProfile — GET /me/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	snap, err := h.profiles.BuildByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profileResponse{User: snap}, h.logger)
}

// UpdateProfile — PUT /me/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var upd domain.ProfileUpdate
	if !bindJSON(w, r, &upd, h.logger) {
		return
	}

	snap, err := h.profiles.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profileResponse{User: snap}, h.logger)
}

// ChangePassword — PUT /me/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var change domain.PasswordChange
	if !bindJSON(w, r, &change, h.logger) {
		return
	}

	if err := h.profiles.ChangePassword(r.Context(), userID, change); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated"}, h.logger)
}

// GetPublicProfile — GET /users/{id}/profile, без контактных данных.
func (h *ProfileHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &domain.ValidationError{Field: "id", Reason: "must be a valid UUID"}, h.logger)
		return
	}

	snap, err := h.profiles.BuildByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, snap.Public(), h.logger)
}
