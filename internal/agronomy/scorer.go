package agronomy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// Scorer computes crop suitability scores. It is a pure function of its
// inputs: scoring the same crop, snapshot, location, and time twice yields
// identical output.
type Scorer struct {
	params ScoringParams
}

// NewScorer creates a scorer with the given parameters.
func NewScorer(params ScoringParams) *Scorer {
	return &Scorer{params: params.Normalize()}
}

// Params returns the scorer's parameter set.
func (s *Scorer) Params() ScoringParams {
	return s.params
}

// Score computes a 0-100 suitability score for the crop under the given
// conditions, along with human-readable factor strings explaining each term.
// The snapshot must come from a successful weather fetch; the scorer does
// not handle missing weather data.
func (s *Scorer) Score(crop catalog.Crop, snap *weather.Snapshot, loc catalog.Location, now time.Time) (float64, []string) {
	var (
		score   float64
		factors []string
	)

	// Temperature term: full score inside the crop's range, linear decay
	// outside the nearer bound.
	temp := snap.Temperature
	var tempScore float64
	switch {
	case crop.TemperatureRange.Contains(temp):
		tempScore = 100
		factors = append(factors, fmt.Sprintf("Temperature (%.1f°C) is optimal", temp))
	case temp < crop.TemperatureRange.Min:
		tempScore = math.Max(0, 100-(crop.TemperatureRange.Min-temp)*s.params.TemperatureDecay)
		factors = append(factors, fmt.Sprintf("Temperature (%.1f°C) is below optimal range", temp))
	default:
		tempScore = math.Max(0, 100-(temp-crop.TemperatureRange.Max)*s.params.TemperatureDecay)
		factors = append(factors, fmt.Sprintf("Temperature (%.1f°C) is above optimal range", temp))
	}
	score += tempScore * s.params.TemperatureWeight

	// Season term: binary with a fixed penalty, not graduated.
	season := SeasonForTime(now)
	if crop.SupportsSeason(season) {
		score += 100 * s.params.SeasonWeight
		factors = append(factors, fmt.Sprintf("Current season (%s) is suitable", season))
	} else {
		score += s.params.SeasonPenalty * s.params.SeasonWeight
		factors = append(factors, fmt.Sprintf("Current season (%s) is not optimal", season))
	}

	// Soil term: textual containment match against the location's soil.
	if soilMatches(loc.SoilType, crop.SoilTypes) {
		score += 100 * s.params.SoilWeight
		factors = append(factors, fmt.Sprintf("Soil type (%s) is suitable", loc.SoilType))
	} else {
		score += s.params.SoilFallback * s.params.SoilWeight
		factors = append(factors, fmt.Sprintf("Soil type (%s) needs amendment", loc.SoilType))
	}

	// Humidity term: match the crop's water requirement band.
	if humidityMatches(crop.WaterRequirement, snap.Humidity) {
		score += 100 * s.params.HumidityWeight
	} else {
		score += s.params.HumidityFallback * s.params.HumidityWeight
	}

	return math.Min(100, math.Max(0, score)), factors
}

// soilMatches reports whether the location soil description contains any of
// the crop's soil types.
func soilMatches(locationSoil string, cropSoils []string) bool {
	for _, soil := range cropSoils {
		if strings.Contains(locationSoil, soil) {
			return true
		}
	}
	return false
}

// humidityMatches reports whether the humidity suits the water requirement.
// Very-high-requirement crops use the same band as high.
func humidityMatches(req catalog.WaterRequirement, humidity float64) bool {
	switch req {
	case catalog.WaterHigh, catalog.WaterVeryHigh:
		return humidity > 70
	case catalog.WaterMedium:
		return humidity >= 50 && humidity <= 80
	case catalog.WaterLow:
		return humidity < 60
	default:
		return false
	}
}
