// Package main provides the entrypoint for the AgroSight API server.
package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/api"
	"github.com/agrosight/agrosight/internal/api/handler"
	"github.com/agrosight/agrosight/internal/api/middleware"
	"github.com/agrosight/agrosight/internal/auth"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/config"
	"github.com/agrosight/agrosight/internal/database"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/provider/resilience"
	"github.com/agrosight/agrosight/internal/telemetry"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
	"github.com/agrosight/agrosight/internal/weather/openweathermap"
	"github.com/agrosight/agrosight/internal/weather/simulated"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "agrosight-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AgroSight API")

	cfg := config.Load(log)

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database. Without one the service still runs, on in-memory
	// repositories, so local development needs no Postgres.
	var pool *pgxpool.Pool
	pool, err = database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, using in-memory repositories")
		pool = nil
	} else {
		defer pool.Close()
		log.Info().
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.Database).
			Msg("database connected")
	}

	// Static catalog of locations, crops and monitoring sites
	cat := catalog.New()

	// Weather provider: live OpenWeatherMap behind a circuit breaker when an
	// API key is configured, simulated otherwise
	var weatherProvider weather.Provider
	var providerRegistry *resilience.Registry
	if cfg.OpenWeatherMapAPIKey != "" {
		owmClient := resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName))
		providerRegistry = resilience.GlobalRegistry
		providerRegistry.Register(openweathermap.ProviderName, owmClient)

		weatherProvider = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     cfg.OpenWeatherMapAPIKey,
			HTTPClient: owmClient,
			Logger:     log,
		})
		log.Info().Msg("OpenWeatherMap provider initialized")
	} else {
		weatherProvider = simulated.New(rand.New(rand.NewSource(time.Now().UnixNano())))
		log.Warn().Msg("OWM_API_KEY not set, using simulated weather provider")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Logger:   log,
		CacheTTL: cfg.WeatherCacheTTL,
	})
	log.Info().Str("provider", weatherService.ProviderName()).Msg("weather service initialized")

	// Scoring parameter tuning
	var tuningRepo tuning.Repository
	if pool != nil {
		tuningRepo = tuning.NewPostgresRepository(pool)
	} else {
		tuningRepo = tuning.NewMemoryRepository()
	}
	tuningService := tuning.NewService(tuning.ServiceConfig{
		Repository: tuningRepo,
		Logger:     log,
		CacheTTL:   cfg.ParamsCacheTTL,
	})
	log.Info().Msg("tuning service initialized")

	// Monitoring and analysis history
	var monitorRepo monitor.Repository
	if pool != nil {
		monitorRepo = monitor.NewPostgresRepository(pool)
	} else {
		monitorRepo = monitor.NewMemoryRepository()
	}
	monitorService := monitor.NewService(monitor.ServiceConfig{
		Catalog:    cat,
		Repository: monitorRepo,
		Logger:     log,
	})
	log.Info().Msg("monitor service initialized")

	// Admin token validation
	jwtSigningKey := cfg.JWTSigningKey
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
	})

	// Create router with configuration
	var dbPinger handler.Pinger
	if pool != nil {
		dbPinger = pool
	}
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		Catalog:          cat,
		WeatherService:   weatherService,
		TuningService:    tuningService,
		MonitorService:   monitorService,
		Planner:          agronomy.NewPlanner(rand.New(rand.NewSource(time.Now().UnixNano()))),
		JWTService:       jwtService,
		Database:         dbPinger,
		ProviderRegistry: providerRegistry,
		RequireTLS:       cfg.RequireTLS,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
