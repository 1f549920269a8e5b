package tuning

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/agronomy"
)

// ServiceConfig holds configuration for the tuning service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger

	// CacheTTL is how long parameters are cached in memory (default: 1 minute).
	CacheTTL time.Duration

	// Defaults is the parameter set served when nothing is stored.
	// If zero-valued, agronomy.DefaultScoringParams() is used.
	Defaults agronomy.ScoringParams
}

// Service serves scoring parameters with caching and fallback to defaults.
// Scorers are rebuilt from Current on every analysis, so stored changes take
// effect within one cache TTL without a restart.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	cacheTTL time.Duration
	defaults agronomy.ScoringParams

	mu          sync.RWMutex
	cached      *StoredParams
	cacheExpiry time.Time
}

// NewService creates a new tuning service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	defaults := cfg.Defaults.Normalize()

	return &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		defaults: defaults,
	}
}

// Current returns the active parameter set. Stored parameters win over
// defaults; repository failures fall back to the last cached set and then
// to defaults, so scoring never stalls on storage trouble.
func (s *Service) Current(ctx context.Context) agronomy.ScoringParams {
	s.mu.RLock()
	if s.cached != nil && time.Now().Before(s.cacheExpiry) {
		params := s.cached.Params
		s.mu.RUnlock()
		return params
	}
	s.mu.RUnlock()

	stored, err := s.repo.GetParams(ctx)
	if err != nil {
		if !errors.Is(err, ErrParamsNotFound) {
			s.logger.Warn().Err(err).Msg("failed to load scoring parameters, using fallback")
			s.mu.RLock()
			defer s.mu.RUnlock()
			if s.cached != nil {
				return s.cached.Params
			}
		}
		return s.defaults
	}

	stored.Params = stored.Params.Normalize()

	s.mu.Lock()
	s.cached = stored
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
	s.mu.Unlock()

	return stored.Params
}

// Describe returns the active parameter set together with its provenance.
func (s *Service) Describe(ctx context.Context) *StoredParams {
	params := s.Current(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached != nil && s.cached.Params == params {
		cp := *s.cached
		return &cp
	}
	return &StoredParams{Params: params}
}

// Update validates and persists a new parameter set.
func (s *Service) Update(ctx context.Context, params agronomy.ScoringParams, updatedBy string) (*StoredParams, error) {
	params = params.Normalize()
	if err := Validate(params); err != nil {
		return nil, err
	}

	stored := &StoredParams{
		Params:    params,
		UpdatedAt: time.Now(),
		UpdatedBy: updatedBy,
	}
	if err := s.repo.SetParams(ctx, stored); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = stored
	s.cacheExpiry = stored.UpdatedAt.Add(s.cacheTTL)
	s.mu.Unlock()

	s.logger.Info().
		Str("updated_by", updatedBy).
		Msg("scoring parameters updated")

	return stored, nil
}

// Reset deletes any stored parameters, reverting to defaults.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.DeleteParams(ctx); err != nil {
		return err
	}
	s.InvalidateCache()
	return nil
}

// Defaults returns the compiled-in fallback parameter set.
func (s *Service) Defaults() agronomy.ScoringParams {
	return s.defaults
}

// InvalidateCache clears the cached parameters, forcing a repository read
// on next access.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.cacheExpiry = time.Time{}
}
