package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/monitor"
	"github.com/agrosight/agrosight/internal/tuning"
	"github.com/agrosight/agrosight/internal/weather"
)

// RefreshJob warms the weather cache and records analysis snapshots for the
// configured locations.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	catalog *catalog.Catalog

	// Services (optional, nil if not configured)
	weatherService *weather.Service
	tuningService  *tuning.Service
	monitorService *monitor.Service

	// Metrics
	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRefreshes    int64
	SuccessfulRefresh int64
	FailedRefreshes   int64
	WeatherRefresh    int64
	AnalysesRecorded  int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	Catalog        *catalog.Catalog
	WeatherService *weather.Service
	TuningService  *tuning.Service
	MonitorService *monitor.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Concurrency == 0 {
		defaults := DefaultRefreshConfig()
		defaults.Locations = config.Locations
		config = defaults
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		catalog:        cfg.Catalog,
		weatherService: cfg.WeatherService,
		tuningService:  cfg.TuningService,
		monitorService: cfg.MonitorService,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalLocations int
	Successful     int
	Failed         int
	Errors         []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Task     string
	Location string
	Error    string
}

// Run executes the refresh job for all configured locations.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()

	locations := j.locations()
	result := &RefreshResult{
		StartTime:      startTime,
		TotalLocations: len(locations),
	}

	j.logger.Info().
		Int("total_locations", result.TotalLocations).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache refresh job")

	// Create work channels
	locationsChan := make(chan catalog.Location, len(locations))
	resultsChan := make(chan locationResult, len(locations))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, locationsChan, resultsChan)
		}()
	}

	// Send locations to workers
	for _, loc := range locations {
		locationsChan <- loc
	}
	close(locationsChan)

	// Wait for workers to complete
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results
	for lr := range resultsChan {
		if lr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, lr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	// Update metrics
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("cache refresh job completed")

	return result
}

// locations resolves the configured location names against the catalog,
// skipping names the catalog no longer knows.
func (j *RefreshJob) locations() []catalog.Location {
	if len(j.config.Locations) == 0 {
		return j.catalog.Locations()
	}

	out := make([]catalog.Location, 0, len(j.config.Locations))
	for _, name := range j.config.Locations {
		loc, err := j.catalog.Location(name)
		if err != nil {
			j.logger.Warn().Str("location", name).Msg("skipping unknown refresh location")
			continue
		}
		out = append(out, loc)
	}
	return out
}

type locationResult struct {
	location string
	success  bool
	errors   []RefreshError
}

func (j *RefreshJob) refreshWorker(ctx context.Context, locations <-chan catalog.Location, results chan<- locationResult) {
	for loc := range locations {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshLocation(ctx, loc)
		}
	}
}

func (j *RefreshJob) refreshLocation(ctx context.Context, loc catalog.Location) locationResult {
	result := locationResult{
		location: loc.Name,
		success:  true,
	}

	// Create timeout context for this location
	locCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	var snap *weather.Snapshot

	// Warm the weather cache
	if j.config.RefreshWeather && j.weatherService != nil {
		fetched, err := j.weatherService.Current(locCtx, loc)
		if err != nil {
			result.errors = append(result.errors, RefreshError{
				Task:     "weather",
				Location: loc.Name,
				Error:    err.Error(),
			})
			result.success = false
		} else {
			snap = fetched
			atomic.AddInt64(&j.metrics.WeatherRefresh, 1)
		}
	}

	// Record an analysis snapshot so dashboard history stays current
	if j.config.RecordAnalyses && j.monitorService != nil && snap != nil {
		j.recordAnalysis(locCtx, loc, snap)
		atomic.AddInt64(&j.metrics.AnalysesRecorded, 1)
	}

	return result
}

func (j *RefreshJob) recordAnalysis(ctx context.Context, loc catalog.Location, snap *weather.Snapshot) {
	now := time.Now()
	season := agronomy.SeasonForTime(now)

	params := agronomy.DefaultScoringParams()
	if j.tuningService != nil {
		params = j.tuningService.Current(ctx)
	}

	recommender := agronomy.NewRecommender(j.catalog, params)
	results := recommender.Recommend(loc, snap, now, agronomy.DefaultTopN)

	record := &monitor.AnalysisRecord{
		Location:       loc.Name,
		Season:         string(season),
		Temperature:    snap.Temperature,
		Humidity:       snap.Humidity,
		CropsEvaluated: len(j.catalog.Crops()),
	}
	if len(results) > 0 {
		record.TopCrop = results[0].Crop.Name
		record.TopScore = results[0].Score
	}

	j.monitorService.RecordAnalysis(ctx, record)
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		WeatherRefresh:      atomic.LoadInt64(&j.metrics.WeatherRefresh),
		AnalysesRecorded:    atomic.LoadInt64(&j.metrics.AnalysesRecorded),
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"weather_refreshes":     m.WeatherRefresh,
		"analyses_recorded":     m.AnalysesRecorded,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
