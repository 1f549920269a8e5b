// Package worker provides background job processing for AgroSight.
package worker

import (
	"time"
)

// RefreshConfig holds configuration for the cache refresh job.
type RefreshConfig struct {
	// Locations are the catalog location names to refresh. If empty, every
	// catalog location is refreshed.
	Locations []string

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshWeather enables weather cache warming.
	// Default: true
	RefreshWeather bool

	// RecordAnalyses enables recording an analysis snapshot per location,
	// keeping dashboard history populated between interactive requests.
	// Default: true
	RecordAnalyses bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency:    3,
		Timeout:        30 * time.Second,
		RefreshWeather: true,
		RecordAnalyses: true,
	}
}
