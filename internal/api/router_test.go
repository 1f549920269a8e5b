package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api"
	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/auth"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
	"github.com/agrosight/agrosight/internal/weather/simulated"
)

// testJWTService creates a JWT service for generating test tokens.
func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.agrosight.in",
		Audience:   "agrosight-api",
	})
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	cat := catalog.New()

	weatherSvc := weather.NewService(weather.ServiceConfig{
		Provider: simulated.New(rand.New(rand.NewSource(7))),
		Logger:   logger,
	})
	tuningSvc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
		Logger:     logger,
	})
	monitorSvc := monitor.NewService(monitor.ServiceConfig{
		Catalog:    cat,
		Repository: monitor.NewMemoryRepository(),
		Logger:     logger,
		Rand:       rand.New(rand.NewSource(7)),
	})

	return api.NewRouter(api.RouterConfig{
		Version:        "test",
		BuildTime:      "2025-01-01T00:00:00Z",
		Logger:         logger,
		Catalog:        cat,
		WeatherService: weatherSvc,
		TuningService:  tuningSvc,
		MonitorService: monitorSvc,
		Planner:        agronomy.NewPlanner(rand.New(rand.NewSource(7))),
		JWTService:     testJWTService(),
	})
}

// addAuthHeader adds a valid admin Bearer token to the request.
func addAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	token, _, err := testJWTService().GenerateToken("ops@agrosight.in")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_RequireTLS_RejectsForwardedHTTP(t *testing.T) {
	logger := zerolog.New(io.Discard)
	router := api.NewRouter(api.RouterConfig{
		Version:    "test",
		BuildTime:  "2025-01-01T00:00:00Z",
		Logger:     logger,
		Catalog:    catalog.New(),
		JWTService: testJWTService(),
		RequireTLS: true,
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/locations", http.NoBody)
	req.Header.Set("X-Forwarded-Proto", "http")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "TLS required")
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_SystemStatus_RequiresAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.NotEmpty(t, status.Subsystems)
}

func TestRouter_ListLocations(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/locations", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.LocationList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	assert.Equal(t, 8, list.Total)
	assert.Len(t, list.Locations, 8)
}

func TestRouter_NearestLocation(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/locations/nearest?lat=12.97&lon=77.59", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var nearest models.NearestLocation
	err := json.Unmarshal(w.Body.Bytes(), &nearest)
	require.NoError(t, err)

	assert.Equal(t, "Bangalore", nearest.Location.Name)
	// The query point is roughly half a kilometer from the Bangalore
	// catalog coordinates, so the reported value must be in kilometers.
	assert.Greater(t, nearest.DistanceKM, 0.1)
	assert.Less(t, nearest.DistanceKM, 1.0)
}

func TestRouter_NearestLocation_MissingParams(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/locations/nearest", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "lat")
	assert.Contains(t, w.Body.String(), "lon")
}

func TestRouter_GetWeather(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/Mysore", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Location models.Location `json:"location"`
		Weather  models.Weather  `json:"weather"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Mysore", resp.Location.Name)
	assert.Equal(t, "Mysore", resp.Weather.Location)
	assert.NotEmpty(t, resp.Weather.Season)
}

func TestRouter_GetWeather_UnknownLocation(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/Atlantis", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Contains(t, problem.Available, "Bangalore")
	assert.Len(t, problem.Available, 8)
}

func TestRouter_ListCrops(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/crops", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.CropList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	assert.Equal(t, 10, list.Total)
	assert.NotEmpty(t, list.CurrentSeason)
}

func TestRouter_GetGrowthPlan(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/crops/Rice/growth-plan", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var plan models.GrowthPlan
	err := json.Unmarshal(w.Body.Bytes(), &plan)
	require.NoError(t, err)

	assert.Equal(t, "Rice", plan.Crop)
	assert.Len(t, plan.Stages, 5)
	assert.NotEmpty(t, plan.PlantingDate)
	assert.NotEmpty(t, plan.Investment.Breakdown)
}

func TestRouter_GetGrowthPlan_UnknownCrop(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/crops/Quinoa/growth-plan", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Contains(t, problem.Available, "Rice")
	assert.Len(t, problem.Available, 10)
}

func TestRouter_GetRecommendations(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/recommendations/Bangalore", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.RecommendationResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Bangalore", resp.Location)
	assert.NotEmpty(t, resp.Season)
	assert.LessOrEqual(t, len(resp.Recommendations), 3)
	for i, rec := range resp.Recommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.NotEmpty(t, rec.Crop)
	}
}

func TestRouter_GetRecommendations_InvalidCount(t *testing.T) {
	router := newTestRouter()

	for _, count := range []string{"abc", "0", "-2"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/recommendations/Bangalore?count="+count, http.NoBody)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "count=%s", count)
	}
}

func TestRouter_GetAnalysis(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/Mysore", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var analysis models.AnalysisResponse
	err := json.Unmarshal(w.Body.Bytes(), &analysis)
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.AnalysisID)
	assert.Equal(t, "Mysore", analysis.Location.Name)
	assert.NotEmpty(t, analysis.SeasonalAdvice)
	assert.LessOrEqual(t, len(analysis.Recommendations), 5)
	assert.LessOrEqual(t, len(analysis.GrowthPlans), 3)

	// The analysis should now appear in the history.
	req = httptest.NewRequest(http.MethodGet, "/v1/analyses", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), analysis.AnalysisID)

	// And be retrievable directly by ID.
	req = httptest.NewRequest(http.MethodGet, "/v1/analyses/"+analysis.AnalysisID, http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var record monitor.AnalysisRecord
	err = json.Unmarshal(w.Body.Bytes(), &record)
	require.NoError(t, err)
	assert.Equal(t, analysis.AnalysisID, record.ID)
	assert.Equal(t, "Mysore", record.Location)
}

func TestRouter_GetAnalysisRecord_Unknown(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/analyses/ana_does-not-exist", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ListAlerts(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/alerts", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Alerts []monitor.Alert `json:"alerts"`
		Total  int             `json:"total"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, len(resp.Alerts), resp.Total)
	require.NotEmpty(t, resp.Alerts)
	assert.NotEmpty(t, resp.Alerts[0].Message)
}

func TestRouter_ListSites(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sites", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.SiteList
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)

	assert.Equal(t, 5, list.Total)
}

func TestRouter_GetSiteHealth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sites/Maddur/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maddur")
}

func TestRouter_GetSiteHealth_UnknownSite(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sites/Nowhere/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Len(t, problem.Available, 5)
}

func TestRouter_PredictAll(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/sites:predict-all", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var batch monitor.PredictionBatch
	err := json.Unmarshal(w.Body.Bytes(), &batch)
	require.NoError(t, err)

	assert.Len(t, batch.Predictions, 5)
	assert.Empty(t, batch.Failures)
}

func TestRouter_DashboardSummary(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/summary", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary monitor.DashboardSummary
	err := json.Unmarshal(w.Body.Bytes(), &summary)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.LocationsMonitored)
	assert.Equal(t, 5, summary.SitesMonitored)
	assert.Equal(t, 10, summary.CropsTracked)
}

func TestRouter_GetTrends(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/trends?days=14", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"days\":14")
}

func TestRouter_GetTrends_InvalidDays(t *testing.T) {
	router := newTestRouter()

	for _, days := range []string{"0", "366", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/trends?days="+days, http.NoBody)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "days=%s", days)
	}
}

func TestRouter_AdminScoringParams_RequiresAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/scoring-params", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminScoringParams_GetAndUpdate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/scoring-params", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ScoringParamsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "defaults", resp.Source)
	assert.InDelta(t, 0.4, resp.Params.TemperatureWeight, 1e-9)

	// Omitted fields fall back to the defaults.
	body := []byte(`{"temperature_weight":0.5,"season_weight":0.2,"soil_weight":0.2,"humidity_weight":0.1}`)

	req = httptest.NewRequest(http.MethodPut, "/v1/admin/scoring-params", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "stored", resp.Source)
	assert.Equal(t, "ops@agrosight.in", resp.UpdatedBy)
	assert.InDelta(t, 0.5, resp.Params.TemperatureWeight, 1e-9)
	assert.InDelta(t, 30.0, resp.Params.SeasonPenalty, 1e-9)
}

func TestRouter_AdminScoringParams_ExplicitZeroStored(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"temperature_weight":0.4,"season_weight":0.3,"soil_weight":0.2,"humidity_weight":0.1,"season_penalty":0}`)

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/scoring-params", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ScoringParamsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Zero(t, resp.Params.SeasonPenalty)
	assert.InDelta(t, 60.0, resp.Params.SoilFallback, 1e-9)

	// The zero sticks on a fresh read.
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/scoring-params", http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Zero(t, resp.Params.SeasonPenalty)
}

func TestRouter_AdminScoringParams_RejectsBadWeights(t *testing.T) {
	router := newTestRouter()

	update := agronomy.ScoringParams{
		TemperatureWeight: 0.9,
		SeasonWeight:      0.9,
		SoilWeight:        0.2,
		HumidityWeight:    0.1,
	}
	body, _ := json.Marshal(update)

	req := httptest.NewRequest(http.MethodPut, "/v1/admin/scoring-params", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AdminCacheInvalidate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/cache/invalidate", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_NotFoundRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
