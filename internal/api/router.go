// Package api provides the HTTP API for AgroSight.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api/handler"
	"github.com/agrosight/agrosight/internal/api/middleware"
	"github.com/agrosight/agrosight/internal/auth"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/provider/resilience"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	Catalog          *catalog.Catalog
	WeatherService   *weather.Service
	TuningService    *tuning.Service
	MonitorService   *monitor.Service
	Planner          *agronomy.Planner
	JWTService       *auth.JWTService
	Database         handler.Pinger
	ProviderRegistry *resilience.Registry
	RequireTLS       bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "agrosight-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement behind a proxy
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Database, cfg.ProviderRegistry, cfg.WeatherService)
	locationHandler := handler.NewLocationHandler(cfg.Catalog)
	weatherHandler := handler.NewWeatherHandler(cfg.Catalog, cfg.WeatherService)
	cropHandler := handler.NewCropHandler(cfg.Catalog, cfg.Planner)
	recommendationHandler := handler.NewRecommendationHandler(cfg.Catalog, cfg.WeatherService, cfg.TuningService, cfg.Planner, cfg.MonitorService)
	monitorHandler := handler.NewMonitorHandler(cfg.Catalog, cfg.MonitorService)
	adminHandler := handler.NewAdminHandler(cfg.TuningService, cfg.WeatherService)

	// Create admin auth middleware
	requireAdmin := middleware.RequireAdmin(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	adminRateLimit := middleware.RateLimitByAdmin(middleware.AdminRateLimit)      // 10 req/min per admin
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(requireAdmin).Get("/status", opsHandler.SystemStatus)
		})

		// Catalog endpoints (public) - standard rate limiting
		r.Route("/locations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", locationHandler.ListLocations)
			r.Get("/nearest", locationHandler.NearestLocation)
		})

		r.Route("/crops", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", cropHandler.ListCrops)
			r.Get("/{cropName}/growth-plan", cropHandler.GetGrowthPlan)
		})

		// Weather involves an upstream provider call - strict rate limiting
		r.With(expensiveRateLimit).Get("/weather/{location}", weatherHandler.GetWeather)

		// Scoring endpoints - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Get("/recommendations/{location}", recommendationHandler.GetRecommendations)
		r.With(expensiveRateLimit).Get("/analysis/{location}", recommendationHandler.GetAnalysis)

		// Monitoring endpoints (public) - standard rate limiting
		r.Route("/sites", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", monitorHandler.ListSites)
			r.Get("/{site}/health", monitorHandler.GetSiteHealth)
		})
		r.With(expensiveRateLimit).Get("/sites:predict-all", monitorHandler.PredictAll)

		r.With(standardRateLimit).Get("/alerts", monitorHandler.ListAlerts)
		r.With(standardRateLimit).Get("/dashboard/summary", monitorHandler.DashboardSummary)
		r.With(standardRateLimit).Get("/trends", monitorHandler.GetTrends)
		r.With(standardRateLimit).Get("/analyses", monitorHandler.ListAnalyses)
		r.With(standardRateLimit).Get("/analyses/{analysisID}", monitorHandler.GetAnalysis)

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Use(adminRateLimit)

			// Scoring parameter management
			r.Route("/scoring-params", func(r chi.Router) {
				r.Get("/", adminHandler.GetScoringParams)
				r.Put("/", adminHandler.UpdateScoringParams)
				r.Post("/invalidate", adminHandler.InvalidateScoringParams)
			})

			r.Post("/cache/invalidate", adminHandler.InvalidateWeatherCache)
		})
	})

	return r
}
