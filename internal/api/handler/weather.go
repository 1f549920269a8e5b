package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// WeatherHandler handles current-weather endpoints.
type WeatherHandler struct {
	catalog *catalog.Catalog
	weather *weather.Service
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(cat *catalog.Catalog, weatherSvc *weather.Service) *WeatherHandler {
	return &WeatherHandler{catalog: cat, weather: weatherSvc}
}

// WeatherResponse is current conditions together with location details.
type WeatherResponse struct {
	Location models.Location `json:"location"`
	Weather  models.Weather  `json:"weather"`
}

// GetWeather handles GET /v1/weather/{location}.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "location")

	loc, err := h.catalog.Location(name)
	if err != nil {
		response.NotFoundWithAvailable(w, r, "unknown location: "+name, h.catalog.LocationNames())
		return
	}

	snap, err := h.weather.Current(r.Context(), loc)
	if err != nil {
		if errors.Is(err, weather.ErrNoDataForLocation) {
			response.NotFound(w, r, "no weather data for location: "+name)
			return
		}
		if errors.Is(err, weather.ErrProviderUnavailable) {
			response.ServiceUnavailable(w, r, "weather provider unavailable")
			return
		}
		response.InternalError(w, r, "weather lookup failed")
		return
	}

	season := agronomy.SeasonForTime(time.Now())

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, WeatherResponse{
		Location: models.NewLocation(loc),
		Weather:  models.NewWeather(snap, season),
	})
}
