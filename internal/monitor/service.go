package monitor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agrosight/agrosight/internal/catalog"
)

// DefaultAnalysesLimit is the record count returned when no limit is given.
const DefaultAnalysesLimit = 20

// MaxAnalysesLimit caps the record count a single request can ask for.
const MaxAnalysesLimit = 100

// ServiceConfig holds configuration for the monitoring service.
type ServiceConfig struct {
	Catalog    *catalog.Catalog
	Repository Repository
	Logger     zerolog.Logger

	// Rand feeds the simulated metrics. If nil, a time-seeded source is
	// used; tests inject a fixed seed.
	Rand *rand.Rand

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Service produces monitoring analytics and manages analysis records.
type Service struct {
	catalog *catalog.Catalog
	repo    Repository
	logger  zerolog.Logger
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a new monitoring service.
func NewService(cfg ServiceConfig) *Service {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		catalog: cfg.Catalog,
		repo:    cfg.Repository,
		logger:  cfg.Logger,
		now:     now,
		rng:     rng,
	}
}

// RecordAnalysis assigns an ID and timestamp and persists the record.
// Persistence failures are logged and swallowed so an analysis response is
// never blocked by storage trouble.
func (s *Service) RecordAnalysis(ctx context.Context, record *AnalysisRecord) *AnalysisRecord {
	record.ID = "ana_" + uuid.New().String()[:22]
	record.CreatedAt = s.now()

	if err := s.repo.InsertAnalysis(ctx, record); err != nil {
		s.logger.Warn().Err(err).
			Str("location", record.Location).
			Msg("failed to persist analysis record")
	}
	return record
}

// RecentAnalyses returns recent records, newest first. Non-positive limits
// fall back to DefaultAnalysesLimit; limits above MaxAnalysesLimit are
// clamped.
func (s *Service) RecentAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = DefaultAnalysesLimit
	}
	if limit > MaxAnalysesLimit {
		limit = MaxAnalysesLimit
	}
	return s.repo.RecentAnalyses(ctx, limit)
}

// GetAnalysis returns the persisted record with the given ID, or
// ErrAnalysisNotFound when it does not exist.
func (s *Service) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	return s.repo.GetAnalysis(ctx, id)
}

// SiteHealth returns a simulated field-health reading for a monitoring site.
func (s *Service) SiteHealth(_ context.Context, siteName string) (*SiteHealth, error) {
	site, err := s.catalog.Site(siteName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	health := 0.5 + 0.4*s.rng.Float64()
	samples := 80 + s.rng.Intn(41)
	confidence := 0.75 + 0.2*s.rng.Float64()
	s.mu.Unlock()

	return &SiteHealth{
		Site:            site.Name,
		State:           site.State,
		Climate:         site.Climate,
		Point:           site.Point,
		OverallHealth:   health,
		DominantClass:   ClassifyHealth(health),
		AverageNDVI:     0.3 + 0.5*health,
		SamplesAnalyzed: samples,
		Confidence:      confidence,
		Recommendations: siteRecommendations(site),
		AnalyzedAt:      s.now(),
	}, nil
}

// siteRecommendations builds the advisory text for a site reading.
func siteRecommendations(site catalog.MonitoringSite) []string {
	return []string{
		fmt.Sprintf("Monitor crop conditions in %s", site.Name),
		fmt.Sprintf("Optimize for %s climate conditions", strings.ToLower(site.Climate)),
		fmt.Sprintf("Consider %s state agricultural guidelines", site.State),
		"Continue regular field monitoring",
	}
}

// alertConditions are the simulated findings the monitor raises alerts for.
var alertConditions = []struct {
	level   AlertLevel
	message string
}{
	{AlertWarning, "Soil moisture below optimal level"},
	{AlertInfo, "Pest monitoring recommended"},
	{AlertUrgent, "Irrigation system malfunction detected"},
	{AlertWarning, "Vegetation index trending down"},
	{AlertInfo, "Scheduled field inspection due"},
}

// Alerts returns simulated field alerts across the monitoring sites,
// newest first.
func (s *Service) Alerts(_ context.Context) []Alert {
	siteNames := s.catalog.SiteNames()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 3 + s.rng.Intn(3)
	alerts := make([]Alert, 0, count)
	for i := 0; i < count; i++ {
		cond := alertConditions[s.rng.Intn(len(alertConditions))]
		site := siteNames[s.rng.Intn(len(siteNames))]
		alerts = append(alerts, Alert{
			ID:        "alr_" + uuid.New().String()[:22],
			Site:      site,
			Level:     cond.level,
			Message:   fmt.Sprintf("%s in %s", cond.message, site),
			CreatedAt: now.Add(-time.Duration(i) * 6 * time.Hour),
			Resolved:  cond.level == AlertInfo && s.rng.Intn(2) == 0,
		})
	}
	return alerts
}

// PredictAll runs a best-effort health prediction for every monitoring
// site. A failing site lands in the failure list and never aborts the rest.
func (s *Service) PredictAll(ctx context.Context) *PredictionBatch {
	names := s.catalog.SiteNames()
	batch := &PredictionBatch{
		TotalSites:  len(names),
		GeneratedAt: s.now(),
	}

	for _, name := range names {
		health, err := s.SiteHealth(ctx, name)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("site", name).
				Msg("site prediction failed")
			batch.Failures = append(batch.Failures, BatchFailure{
				Site:   name,
				Reason: err.Error(),
			})
			continue
		}

		batch.Predictions = append(batch.Predictions, SitePrediction{
			Site:        health.Site,
			HealthScore: health.OverallHealth,
			Status:      health.DominantClass,
			Confidence:  health.Confidence,
			PredictedAt: health.AnalyzedAt,
		})
	}

	return batch
}

// DashboardSummary aggregates catalog counts, today's real analysis volume
// and simulated field statistics.
func (s *Service) DashboardSummary(ctx context.Context) *DashboardSummary {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	recordedToday, err := s.repo.CountAnalysesSince(ctx, midnight)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to count today's analyses")
	}

	siteNames := s.catalog.SiteNames()

	s.mu.Lock()
	summary := &DashboardSummary{
		TotalAnalyses:      150 + s.rng.Intn(151),
		HealthyFields:      80 + s.rng.Intn(41),
		ActiveAlerts:       2 + s.rng.Intn(7),
		AverageHealthScore: 0.6 + 0.3*s.rng.Float64(),
		LocationsMonitored: len(s.catalog.LocationNames()),
		SitesMonitored:     len(siteNames),
		CropsTracked:       len(s.catalog.CropNames()),
		RecentActivity: RecentActivity{
			AnalysesRecordedToday: recordedToday,
			PredictionsGenerated:  10 + s.rng.Intn(31),
			HealthAssessments:     8 + s.rng.Intn(18),
		},
		TopPerformingSite: siteNames[s.rng.Intn(len(siteNames))],
		SystemStatus:      "operational",
		LastUpdated:       now,
	}
	s.mu.Unlock()

	return summary
}

// Trends returns one simulated health point per day for the window, most
// recent first. Days outside [1,365] are rejected.
func (s *Service) Trends(_ context.Context, days int) ([]TrendPoint, error) {
	if days < 1 || days > 365 {
		return nil, ErrInvalidDays
	}

	base := s.now()
	points := make([]TrendPoint, 0, days)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < days; i++ {
		health := 0.5 + 0.4*s.rng.Float64()
		points = append(points, TrendPoint{
			Date:               base.AddDate(0, 0, -i).Format("2006-01-02"),
			OverallHealth:      health,
			AnalysesCount:      3 + s.rng.Intn(13),
			AlertsGenerated:    s.rng.Intn(4),
			VegetationIndexAvg: 0.3 + 0.5*health,
		})
	}

	return points, nil
}
