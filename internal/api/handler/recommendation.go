package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
)

// analysisTopRecommendations is how many scored crops a comprehensive
// analysis includes; growth plans are generated for the leading
// analysisPlannedCrops of those.
const (
	analysisTopRecommendations = 5
	analysisPlannedCrops       = 3
)

// RecommendationHandler handles crop recommendation and analysis endpoints.
type RecommendationHandler struct {
	catalog *catalog.Catalog
	weather *weather.Service
	tuning  *tuning.Service
	planner *agronomy.Planner
	monitor *monitor.Service
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(cat *catalog.Catalog, weatherSvc *weather.Service, tuningSvc *tuning.Service, planner *agronomy.Planner, monitorSvc *monitor.Service) *RecommendationHandler {
	return &RecommendationHandler{
		catalog: cat,
		weather: weatherSvc,
		tuning:  tuningSvc,
		planner: planner,
		monitor: monitorSvc,
	}
}

// GetRecommendations handles GET /v1/recommendations/{location}?count=N.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "location")

	loc, err := h.catalog.Location(name)
	if err != nil {
		response.NotFoundWithAvailable(w, r, "unknown location: "+name, h.catalog.LocationNames())
		return
	}

	count, ok := parseCount(w, r)
	if !ok {
		return
	}

	snap, err := h.weather.Current(r.Context(), loc)
	if err != nil {
		if errors.Is(err, weather.ErrProviderUnavailable) {
			response.ServiceUnavailable(w, r, "weather provider unavailable")
			return
		}
		response.InternalError(w, r, "weather lookup failed")
		return
	}

	now := time.Now()
	recommender := agronomy.NewRecommender(h.catalog, h.tuning.Current(r.Context()))
	results := recommender.Recommend(loc, snap, now, count)

	season := agronomy.SeasonForTime(now)
	response.JSON(w, r, http.StatusOK, models.RecommendationResponse{
		Location:        loc.Name,
		Season:          string(season),
		Weather:         models.NewWeather(snap, season),
		Recommendations: models.NewRecommendations(results),
		GeneratedAt:     models.Timestamp(now),
	})
}

// GetAnalysis handles GET /v1/analysis/{location} - weather, scored
// recommendations, growth plans for the leading crops and seasonal advice
// in one response. Each analysis is recorded for the dashboard.
func (h *RecommendationHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "location")

	loc, err := h.catalog.Location(name)
	if err != nil {
		response.NotFoundWithAvailable(w, r, "unknown location: "+name, h.catalog.LocationNames())
		return
	}

	snap, err := h.weather.Current(r.Context(), loc)
	if err != nil {
		if errors.Is(err, weather.ErrProviderUnavailable) {
			response.ServiceUnavailable(w, r, "weather provider unavailable")
			return
		}
		response.InternalError(w, r, "weather lookup failed")
		return
	}

	now := time.Now()
	season := agronomy.SeasonForTime(now)

	recommender := agronomy.NewRecommender(h.catalog, h.tuning.Current(r.Context()))
	results := recommender.Recommend(loc, snap, now, analysisTopRecommendations)

	plans := make([]models.GrowthPlan, 0, analysisPlannedCrops)
	for i, result := range results {
		if i == analysisPlannedCrops {
			break
		}
		plans = append(plans, models.NewGrowthPlan(h.planner.GeneratePlan(result.Crop, now)))
	}

	record := &monitor.AnalysisRecord{
		Location:       loc.Name,
		Season:         string(season),
		Temperature:    snap.Temperature,
		Humidity:       snap.Humidity,
		CropsEvaluated: len(h.catalog.Crops()),
	}
	if len(results) > 0 {
		record.TopCrop = results[0].Crop.Name
		record.TopScore = results[0].Score
	}
	record = h.monitor.RecordAnalysis(r.Context(), record)

	response.JSON(w, r, http.StatusOK, models.AnalysisResponse{
		AnalysisID:        record.ID,
		Location:          models.NewLocation(loc),
		Weather:           models.NewWeather(snap, season),
		Season:            string(season),
		SeasonDescription: agronomy.SeasonDescription(season),
		SeasonalAdvice:    agronomy.SeasonalAdvice(season),
		Recommendations:   models.NewRecommendations(results),
		GrowthPlans:       plans,
		GeneratedAt:       models.Timestamp(now),
	})
}

// parseCount validates the count query parameter. Empty means the default;
// anything that is not a positive integer is a 400.
func parseCount(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return 0, true
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		response.BadRequest(w, r, "invalid count parameter", []models.FieldError{
			{Field: "count", Message: "must be a positive integer"},
		})
		return 0, false
	}
	return count, true
}
