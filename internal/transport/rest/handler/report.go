package handler

import (
	"net/http"

	"listenerlab/internal/service"

	"go.uber.org/zap"
)

// ReportHandler handles host reporting endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
	logger    *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
		logger:    logger,
	}
}

// Population handles GET /v1/reports/population
func (h *ReportHandler) Population(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.Population(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
