package handler

import (
	"net/http"
	"strconv"

	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/catalog"
)

// LocationHandler handles location catalog endpoints.
type LocationHandler struct {
	catalog *catalog.Catalog
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(cat *catalog.Catalog) *LocationHandler {
	return &LocationHandler{catalog: cat}
}

// ListLocations handles GET /v1/locations.
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.NewLocationList(h.catalog.Locations()))
}

// NearestLocation handles GET /v1/locations/nearest?lat&lon.
func (h *LocationHandler) NearestLocation(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	loc, distance, err := h.catalog.Nearest(lat, lon)
	if err != nil {
		response.InternalError(w, r, "nearest location lookup failed")
		return
	}

	// Nearest reports the great-circle distance in meters.
	response.JSON(w, r, http.StatusOK, models.NearestLocation{
		Location:   models.NewLocation(loc),
		DistanceKM: distance / 1000,
	})
}

// parseCoordinates validates the lat/lon query parameters, writing a 400
// Problem response when they are missing or out of range.
func parseCoordinates(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	var fieldErrors []models.FieldError

	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	lat, latErr := strconv.ParseFloat(latStr, 64)
	switch {
	case latStr == "":
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lat", Message: "required"})
	case latErr != nil:
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lat", Message: "must be a number"})
	case lat < -90 || lat > 90:
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}

	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	switch {
	case lonStr == "":
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lon", Message: "required"})
	case lonErr != nil:
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lon", Message: "must be a number"})
	case lon < -180 || lon > 180:
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lon", Message: "must be between -180 and 180"})
	}

	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return 0, 0, false
	}
	return lat, lon, true
}
