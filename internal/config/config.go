// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/database"
)

// Config holds the full application configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// Database holds the PostgreSQL connection settings.
	Database database.Config

	// OpenWeatherMapAPIKey selects the live weather provider when set;
	// empty means the simulated provider.
	OpenWeatherMapAPIKey string

	// WeatherCacheTTL is how long weather snapshots are cached.
	WeatherCacheTTL time.Duration

	// ParamsCacheTTL is how long scoring parameters are cached.
	ParamsCacheTTL time.Duration

	// JWTSigningKey signs admin tokens.
	JWTSigningKey string

	// JWTIssuer and JWTAudience are the token claims the API enforces.
	JWTIssuer   string
	JWTAudience string

	// OTLPEndpoint is the OpenTelemetry collector address.
	OTLPEndpoint string

	// TelemetryEnabled toggles OTLP export.
	TelemetryEnabled bool

	// RequireTLS rejects plain HTTP when running behind a proxy.
	RequireTLS bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load(logger zerolog.Logger) Config {
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("loaded .env file")
	}

	return Config{
		Port:                 getEnv("APP_PORT", "8080"),
		Environment:          getEnv("APP_ENV", "development"),
		Database:             databaseFromEnv(),
		OpenWeatherMapAPIKey: os.Getenv("OWM_API_KEY"),
		WeatherCacheTTL:      getDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		ParamsCacheTTL:       getDuration("PARAMS_CACHE_TTL", time.Minute),
		JWTSigningKey:        os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:            getEnv("JWT_ISSUER", "https://api.agrosight.in"),
		JWTAudience:          getEnv("JWT_AUDIENCE", "agrosight-api"),
		OTLPEndpoint:         getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:     os.Getenv("OTEL_ENABLED") == "true",
		RequireTLS:           os.Getenv("REQUIRE_TLS") == "true",
	}
}

func databaseFromEnv() database.Config {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	maxOpen, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "10"))
	maxIdle, _ := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))

	return database.Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            port,
		User:            getEnv("DB_USER", "agrosight"),
		Password:        getEnv("DB_PASSWORD", "localdev"),
		Database:        getEnv("DB_NAME", "agrosight"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
