package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api/middleware"
	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
)

// AdminHandler handles authenticated operational endpoints.
type AdminHandler struct {
	tuning  *tuning.Service
	weather *weather.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(tuningSvc *tuning.Service, weatherSvc *weather.Service) *AdminHandler {
	return &AdminHandler{tuning: tuningSvc, weather: weatherSvc}
}

// GetScoringParams handles GET /v1/admin/scoring-params.
func (h *AdminHandler) GetScoringParams(w http.ResponseWriter, r *http.Request) {
	stored := h.tuning.Describe(r.Context())
	response.JSON(w, r, http.StatusOK, scoringParamsResponse(stored))
}

// scoringParamsRequest uses pointer fields so an omitted field falls back
// to the default while an explicit zero is kept.
type scoringParamsRequest struct {
	TemperatureWeight *float64 `json:"temperature_weight"`
	SeasonWeight      *float64 `json:"season_weight"`
	SoilWeight        *float64 `json:"soil_weight"`
	HumidityWeight    *float64 `json:"humidity_weight"`
	TemperatureDecay  *float64 `json:"temperature_decay_per_degree"`
	SeasonPenalty     *float64 `json:"season_penalty"`
	SoilFallback      *float64 `json:"soil_fallback"`
	HumidityFallback  *float64 `json:"humidity_fallback"`
	SuitabilityFloor  *float64 `json:"suitability_floor"`
}

// apply overlays the provided fields onto base.
func (req scoringParamsRequest) apply(base agronomy.ScoringParams) agronomy.ScoringParams {
	if req.TemperatureWeight != nil {
		base.TemperatureWeight = *req.TemperatureWeight
	}
	if req.SeasonWeight != nil {
		base.SeasonWeight = *req.SeasonWeight
	}
	if req.SoilWeight != nil {
		base.SoilWeight = *req.SoilWeight
	}
	if req.HumidityWeight != nil {
		base.HumidityWeight = *req.HumidityWeight
	}
	if req.TemperatureDecay != nil {
		base.TemperatureDecay = *req.TemperatureDecay
	}
	if req.SeasonPenalty != nil {
		base.SeasonPenalty = *req.SeasonPenalty
	}
	if req.SoilFallback != nil {
		base.SoilFallback = *req.SoilFallback
	}
	if req.HumidityFallback != nil {
		base.HumidityFallback = *req.HumidityFallback
	}
	if req.SuitabilityFloor != nil {
		base.SuitabilityFloor = *req.SuitabilityFloor
	}
	return base
}

// UpdateScoringParams handles PUT /v1/admin/scoring-params.
func (h *AdminHandler) UpdateScoringParams(w http.ResponseWriter, r *http.Request) {
	var req scoringParamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	params := req.apply(agronomy.DefaultScoringParams())
	stored, err := h.tuning.Update(r.Context(), params, middleware.GetAdminSubject(r.Context()))
	if err != nil {
		if errors.Is(err, tuning.ErrInvalidParams) {
			response.BadRequest(w, r, "invalid scoring parameters", []models.FieldError{
				{Field: "weights", Message: "must be non-negative and sum to 1"},
			})
			return
		}
		response.InternalError(w, r, "failed to store scoring parameters")
		return
	}

	response.JSON(w, r, http.StatusOK, scoringParamsResponse(stored))
}

// InvalidateScoringParams handles POST /v1/admin/scoring-params/invalidate.
func (h *AdminHandler) InvalidateScoringParams(w http.ResponseWriter, r *http.Request) {
	h.tuning.InvalidateCache()
	response.NoContent(w, r)
}

// InvalidateWeatherCache handles POST /v1/admin/cache/invalidate.
func (h *AdminHandler) InvalidateWeatherCache(w http.ResponseWriter, r *http.Request) {
	h.weather.InvalidateCache()
	response.NoContent(w, r)
}

func scoringParamsResponse(stored *tuning.StoredParams) models.ScoringParamsResponse {
	resp := models.ScoringParamsResponse{
		Params: stored.Params,
		Source: "defaults",
	}
	if !stored.UpdatedAt.IsZero() {
		ts := models.Timestamp(stored.UpdatedAt)
		resp.Source = "stored"
		resp.UpdatedAt = &ts
		resp.UpdatedBy = stored.UpdatedBy
	}
	return resp
}
