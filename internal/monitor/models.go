// Package monitor provides field-monitoring analytics: simulated site
// health, dashboard summaries, daily trends, and the persisted record of
// analysis runs.
package monitor

import (
	"errors"
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
)

var (
	// ErrInvalidDays is returned when a trend window is outside [1,365].
	ErrInvalidDays = errors.New("days must be between 1 and 365")

	// ErrAnalysisNotFound is returned when an analysis record is missing.
	ErrAnalysisNotFound = errors.New("analysis record not found")
)

// AnalysisRecord is the persisted outcome of one analysis run.
type AnalysisRecord struct {
	ID             string    `json:"id"`
	Location       string    `json:"location"`
	Season         string    `json:"season"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	TopCrop        string    `json:"top_crop"`
	TopScore       float64   `json:"top_score"`
	CropsEvaluated int       `json:"crops_evaluated"`
	CreatedAt      time.Time `json:"created_at"`
}

// HealthClass buckets a 0-1 health score for display.
type HealthClass string

const (
	HealthExcellent HealthClass = "Excellent" // > 0.8
	HealthGood      HealthClass = "Good"      // > 0.6
	HealthFair      HealthClass = "Fair"      // > 0.4
	HealthPoor      HealthClass = "Poor"
)

// ClassifyHealth maps a 0-1 score to its display class.
func ClassifyHealth(score float64) HealthClass {
	switch {
	case score > 0.8:
		return HealthExcellent
	case score > 0.6:
		return HealthGood
	case score > 0.4:
		return HealthFair
	default:
		return HealthPoor
	}
}

// AlertLevel grades how urgently an alert needs attention.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertUrgent  AlertLevel = "urgent"
)

// Alert is a simulated field alert raised against a monitoring site.
type Alert struct {
	ID        string     `json:"id"`
	Site      string     `json:"site"`
	Level     AlertLevel `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	Resolved  bool       `json:"resolved"`
}

// SiteHealth is a simulated field-health reading for a monitoring site.
type SiteHealth struct {
	Site            string        `json:"site"`
	State           string        `json:"state"`
	Climate         string        `json:"climate"`
	Point           catalog.Point `json:"coordinates"`
	OverallHealth   float64       `json:"overall_health_score"`
	DominantClass   HealthClass   `json:"dominant_class"`
	AverageNDVI     float64       `json:"average_ndvi"`
	SamplesAnalyzed int           `json:"samples_analyzed"`
	Confidence      float64       `json:"confidence"`
	Recommendations []string      `json:"recommendations"`
	AnalyzedAt      time.Time     `json:"analyzed_at"`
}

// SitePrediction is one entry of a predict-all batch.
type SitePrediction struct {
	Site        string      `json:"site"`
	HealthScore float64     `json:"health_score"`
	Status      HealthClass `json:"status"`
	Confidence  float64     `json:"confidence"`
	PredictedAt time.Time   `json:"predicted_at"`
}

// BatchFailure records one site that could not be predicted. Failures never
// abort the rest of the batch.
type BatchFailure struct {
	Site   string `json:"site"`
	Reason string `json:"reason"`
}

// PredictionBatch is the outcome of a best-effort fan-out over all sites.
type PredictionBatch struct {
	Predictions []SitePrediction `json:"predictions"`
	Failures    []BatchFailure   `json:"failures,omitempty"`
	TotalSites  int              `json:"total_sites"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// RecentActivity summarizes today's processing volume.
type RecentActivity struct {
	AnalysesRecordedToday int `json:"analyses_recorded_today"`
	PredictionsGenerated  int `json:"predictions_generated"`
	HealthAssessments     int `json:"health_assessments"`
}

// DashboardSummary is the aggregate view served to the dashboard.
type DashboardSummary struct {
	TotalAnalyses      int            `json:"total_analyses"`
	HealthyFields      int            `json:"healthy_fields"`
	ActiveAlerts       int            `json:"active_alerts"`
	AverageHealthScore float64        `json:"average_health_score"`
	LocationsMonitored int            `json:"locations_monitored"`
	SitesMonitored     int            `json:"sites_monitored"`
	CropsTracked       int            `json:"crops_tracked"`
	RecentActivity     RecentActivity `json:"recent_activity"`
	TopPerformingSite  string         `json:"top_performing_site"`
	SystemStatus       string         `json:"system_status"`
	LastUpdated        time.Time      `json:"last_updated"`
}

// TrendPoint is one day of the health trend series.
type TrendPoint struct {
	Date               string  `json:"date"`
	OverallHealth      float64 `json:"overall_health"`
	AnalysesCount      int     `json:"analyses_count"`
	AlertsGenerated    int     `json:"alerts_generated"`
	VegetationIndexAvg float64 `json:"vegetation_index_avg"`
}
