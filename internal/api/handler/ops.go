// Package handler provides HTTP handlers for the AgroSight API.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agrosight/agrosight/internal/api/models"
	"github.com/agrosight/agrosight/internal/api/response"
	"github.com/agrosight/agrosight/internal/provider/resilience"
	"github.com/agrosight/agrosight/internal/weather"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	registry  *resilience.Registry
	weather   *weather.Service
}

// NewOpsHandler creates a new OpsHandler. db may be nil when the service
// runs without a database; registry may be nil when no upstream providers
// are registered.
func NewOpsHandler(version, buildTime string, db Pinger, registry *resilience.Registry, weatherSvc *weather.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		registry:  registry,
		weather:   weatherSvc,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// is ready when its backing store answers a ping; without a database it is
// always ready.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			response.ServiceUnavailable(w, r, "database unreachable")
			return
		}
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       now,
		Subsystems: h.subsystemStatuses(r.Context()),
		Providers:  h.providerStatuses(),
	}

	for _, sub := range status.Subsystems {
		if sub.Status != models.HealthStatusOK {
			status.Status = models.HealthStatusDegraded
			break
		}
	}
	for _, prov := range status.Providers {
		if prov.Status == models.HealthStatusFail {
			status.Status = models.HealthStatusDegraded
			break
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) subsystemStatuses(ctx context.Context) []models.SubsystemStatus {
	subsystems := make([]models.SubsystemStatus, 0, 2)

	if h.db != nil {
		dbStatus := models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK}

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := h.db.Ping(pingCtx); err != nil {
			detail := err.Error()
			dbStatus.Status = models.HealthStatusFail
			dbStatus.Detail = &detail
		}
		cancel()

		subsystems = append(subsystems, dbStatus)
	}

	if h.weather != nil {
		stats := h.weather.CacheStats()
		detail := fmt.Sprintf("provider %s, %d/%d entries fresh", stats.Provider, stats.FreshEntries, stats.Entries)
		subsystems = append(subsystems, models.SubsystemStatus{
			Name:   "weather-cache",
			Status: models.HealthStatusOK,
			Detail: &detail,
		})
	}

	return subsystems
}

func (h *OpsHandler) providerStatuses() []models.ProviderStatus {
	if h.registry == nil {
		return []models.ProviderStatus{}
	}

	healths := h.registry.GetAllHealth()
	providers := make([]models.ProviderStatus, 0, len(healths))
	for _, health := range healths {
		status := models.ProviderStatus{
			Provider: health.Name,
			Status:   models.HealthStatusOK,
		}
		switch {
		case health.IsUnhealthy():
			status.Status = models.HealthStatusFail
		case health.IsDegraded():
			status.Status = models.HealthStatusDegraded
		}
		if health.LastSuccessAt != nil {
			ts := models.Timestamp(*health.LastSuccessAt)
			status.LastSuccessAt = &ts
		}
		if health.LastFailureAt != nil {
			ts := models.Timestamp(*health.LastFailureAt)
			status.LastFailureAt = &ts
		}
		if health.LastError != "" {
			msg := health.LastError
			status.Message = &msg
		}
		providers = append(providers, status)
	}
	return providers
}
