// Package main provides the entrypoint for the AgroSight background worker.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/config"
	"github.com/agrosight/agrosight/internal/database"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
	"github.com/agrosight/agrosight/internal/weather/openweathermap"
	"github.com/agrosight/agrosight/internal/weather/simulated"
	"github.com/agrosight/agrosight/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "agrosight-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AgroSight worker")

	cfg := config.Load(log)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database; in-memory repositories keep the worker usable
	// without one.
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, using in-memory repositories")
		pool = nil
	} else {
		defer pool.Close()
	}

	cat := catalog.New()

	var weatherProvider weather.Provider
	if cfg.OpenWeatherMapAPIKey != "" {
		weatherProvider = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey: cfg.OpenWeatherMapAPIKey,
			Logger: log,
		})
	} else {
		weatherProvider = simulated.New(rand.New(rand.NewSource(time.Now().UnixNano())))
		log.Warn().Msg("OWM_API_KEY not set, using simulated weather provider")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Logger:   log,
		CacheTTL: cfg.WeatherCacheTTL,
	})

	var tuningRepo tuning.Repository
	var monitorRepo monitor.Repository
	if pool != nil {
		tuningRepo = tuning.NewPostgresRepository(pool)
		monitorRepo = monitor.NewPostgresRepository(pool)
	} else {
		tuningRepo = tuning.NewMemoryRepository()
		monitorRepo = monitor.NewMemoryRepository()
	}

	tuningService := tuning.NewService(tuning.ServiceConfig{
		Repository: tuningRepo,
		Logger:     log,
		CacheTTL:   cfg.ParamsCacheTTL,
	})
	monitorService := monitor.NewService(monitor.ServiceConfig{
		Catalog:    cat,
		Repository: monitorRepo,
		Logger:     log,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:         worker.DefaultRefreshConfig(),
		Logger:         log,
		Catalog:        cat,
		WeatherService: weatherService,
		TuningService:  tuningService,
		MonitorService: monitorService,
	})

	// Create HTTP server for health checks (Cloud Run requirement)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Prefer Pub/Sub triggered jobs; fall back to a local ticker when no
	// subscription is configured.
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")

	if projectID != "" && subscription != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if closeErr := handler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Fatal().Err(err).Msg("pubsub receive failed")
			}
		}()
	} else {
		log.Warn().Msg("PUBSUB_PROJECT_ID or PUBSUB_SUBSCRIPTION not set, using local refresh ticker")

		go func() {
			interval := getRefreshInterval()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			// Warm caches once on startup.
			refreshJob.Run(ctx)

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

func getRefreshInterval() time.Duration {
	raw := os.Getenv("REFRESH_INTERVAL")
	if raw == "" {
		return 15 * time.Minute
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Minute
	}
	return interval
}
