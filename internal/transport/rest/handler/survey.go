package handler

import (
	"net/http"

	"listenerlab/internal/service"
)

// SurveyHandler serves the question and persona catalogs
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Questions handles GET /v1/survey/questions
func (h *SurveyHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions":  h.surveySvc.Questions(),
		"totalSteps": h.surveySvc.TotalSteps(),
	})
}

// Personas handles GET /v1/personas?active=
func (h *SurveyHandler) Personas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surveySvc.Personas(r.URL.Query().Get("active")))
}
