package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/monitor"
)

// MonitorHandler handles monitoring site, dashboard and trend endpoints.
type MonitorHandler struct {
	catalog *catalog.Catalog
	monitor *monitor.Service
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(cat *catalog.Catalog, monitorSvc *monitor.Service) *MonitorHandler {
	return &MonitorHandler{catalog: cat, monitor: monitorSvc}
}

// ListSites handles GET /v1/sites.
func (h *MonitorHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.NewSiteList(h.catalog.Sites()))
}

// GetSiteHealth handles GET /v1/sites/{site}/health.
func (h *MonitorHandler) GetSiteHealth(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "site")

	health, err := h.monitor.SiteHealth(r.Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrSiteNotFound) {
			response.NotFoundWithAvailable(w, r, "unknown monitoring site: "+name, h.catalog.SiteNames())
			return
		}
		response.InternalError(w, r, "site health lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, health)
}

// PredictAll handles GET /v1/sites:predict-all - best-effort predictions
// for every monitoring site.
func (h *MonitorHandler) PredictAll(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.monitor.PredictAll(r.Context()))
}

// DashboardSummary handles GET /v1/dashboard/summary.
func (h *MonitorHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.monitor.DashboardSummary(r.Context()))
}

// TrendsResponse wraps daily trend points.
type TrendsResponse struct {
	Days   int                  `json:"days"`
	Trends []monitor.TrendPoint `json:"trends"`
}

// GetTrends handles GET /v1/trends?days=N.
func (h *MonitorHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "invalid days parameter", []models.FieldError{
				{Field: "days", Message: "must be an integer"},
			})
			return
		}
		days = parsed
	}

	trends, err := h.monitor.Trends(r.Context(), days)
	if err != nil {
		if errors.Is(err, monitor.ErrInvalidDays) {
			response.BadRequest(w, r, "invalid days parameter", []models.FieldError{
				{Field: "days", Message: "must be between 1 and 365"},
			})
			return
		}
		response.InternalError(w, r, "trend lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, TrendsResponse{Days: days, Trends: trends})
}

// AlertsResponse wraps simulated field alerts.
type AlertsResponse struct {
	Alerts []monitor.Alert `json:"alerts"`
	Total  int             `json:"total"`
}

// ListAlerts handles GET /v1/alerts.
func (h *MonitorHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.monitor.Alerts(r.Context())
	response.JSON(w, r, http.StatusOK, AlertsResponse{Alerts: alerts, Total: len(alerts)})
}

// AnalysesResponse wraps recent analysis records.
type AnalysesResponse struct {
	Analyses []*monitor.AnalysisRecord `json:"analyses"`
	Total    int                       `json:"total"`
}

// ListAnalyses handles GET /v1/analyses?limit=N.
func (h *MonitorHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "invalid limit parameter", []models.FieldError{
				{Field: "limit", Message: "must be an integer"},
			})
			return
		}
		limit = parsed
	}

	analyses, err := h.monitor.RecentAnalyses(r.Context(), limit)
	if err != nil {
		response.InternalError(w, r, "analysis history lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, AnalysesResponse{Analyses: analyses, Total: len(analyses)})
}

// GetAnalysis handles GET /v1/analyses/{analysisID}.
func (h *MonitorHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysisID")

	record, err := h.monitor.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, monitor.ErrAnalysisNotFound) {
			response.NotFound(w, r, "unknown analysis record: "+id)
			return
		}
		response.InternalError(w, r, "analysis record lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, record)
}
