package weather

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/catalog"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// Fetch retrieves current conditions for a catalog location.
	Fetch(ctx context.Context, loc catalog.Location) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache snapshots (default: 10 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 1 hour).
	StaleIfErrorTTL time.Duration
}

// Service provides weather snapshots with per-location caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu              sync.RWMutex
	cache           map[string]*cachedSnapshot
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cachedSnapshot struct {
	snapshot  *Snapshot
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		cache:           make(map[string]*cachedSnapshot),
		cleanupInterval: 5 * time.Minute,
	}
}

// Current returns the current weather snapshot for a location.
// Uses cached data if available and not expired.
func (s *Service) Current(ctx context.Context, loc catalog.Location) (*Snapshot, error) {
	s.mu.RLock()
	if cached, ok := s.cache[loc.Name]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.snapshot, nil
	}
	s.mu.RUnlock()

	return s.fetch(ctx, loc)
}

// fetch retrieves a snapshot from the provider and updates the cache.
func (s *Service) fetch(ctx context.Context, loc catalog.Location) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache (prevents thundering herd)
	if cached, ok := s.cache[loc.Name]; ok && time.Now().Before(cached.expiresAt) {
		return cached.snapshot, nil
	}

	s.logger.Debug().
		Str("location", loc.Name).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	snap, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		s.logger.Error().Err(err).
			Str("location", loc.Name).
			Msg("failed to fetch weather")

		// The provider has no observations for these coordinates; retrying
		// or serving stale data will not help.
		if errors.Is(err, ErrNoDataForLocation) {
			return nil, err
		}

		// Stale-if-error: keep serving the last good snapshot for a while.
		if cached, ok := s.cache[loc.Name]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Str("location", loc.Name).
					Time("fetched_at", cached.fetchedAt).
					Msg("serving stale weather data due to provider error")
				return cached.snapshot, nil
			}
		}

		return nil, ErrProviderUnavailable
	}

	now := time.Now()
	s.cache[loc.Name] = &cachedSnapshot{
		snapshot:  snap,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	s.cleanupIfNeeded()

	return snap, nil
}

// cleanupIfNeeded removes expired entries if the cleanup interval has passed.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.cache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired weather cache entries")
	}
}

// InvalidateCache clears all cached snapshots.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedSnapshot)
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		}
	}

	return CacheStats{
		Entries:      len(s.cache),
		FreshEntries: fresh,
		Provider:     s.provider.Name(),
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries      int
	FreshEntries int
	Provider     string
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
