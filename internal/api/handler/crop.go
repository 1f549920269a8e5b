package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/catalog"
)

// CropHandler handles crop catalog and growth plan endpoints.
type CropHandler struct {
	catalog *catalog.Catalog
	planner *agronomy.Planner
}

// NewCropHandler creates a new CropHandler.
func NewCropHandler(cat *catalog.Catalog, planner *agronomy.Planner) *CropHandler {
	return &CropHandler{catalog: cat, planner: planner}
}

// ListCrops handles GET /v1/crops.
func (h *CropHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	list := models.NewCropList(h.catalog.Crops())
	list.CurrentSeason = string(agronomy.SeasonForTime(time.Now()))

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, list)
}

// GetGrowthPlan handles GET /v1/crops/{cropName}/growth-plan.
func (h *CropHandler) GetGrowthPlan(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "cropName")

	crop, err := h.catalog.Crop(name)
	if err != nil {
		response.NotFoundWithAvailable(w, r, "unknown crop: "+name, h.catalog.CropNames())
		return
	}

	plan := h.planner.GeneratePlan(crop, time.Now())
	response.JSON(w, r, http.StatusOK, models.NewGrowthPlan(plan))
}
