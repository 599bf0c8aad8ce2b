package handler

import (
	"encoding/json"
	"net/http"

	"listenerlab/internal/model"
	"listenerlab/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ProfileHandler scores response sets
type ProfileHandler struct {
	profileSvc *service.ProfileService
	logger     *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileSvc: profileSvc,
		logger:     logger,
	}
}

// Score handles POST /v1/profiles
func (h *ProfileHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req model.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileSvc.Evaluate(req.Responses)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ForSubmission handles GET /v1/submissions/{id}/profile
func (h *ProfileHandler) ForSubmission(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileSvc.ForSubmission(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
