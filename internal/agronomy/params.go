// Package agronomy implements the crop suitability scoring engine, the
// recommender built on top of it, and the growth plan generator.
package agronomy

// ScoringParams holds the tunable constants of the suitability heuristic.
// The weights must sum to 1.0; scores are clamped to [0,100].
type ScoringParams struct {
	// Term weights.
	TemperatureWeight float64 `json:"temperature_weight"`
	SeasonWeight      float64 `json:"season_weight"`
	SoilWeight        float64 `json:"soil_weight"`
	HumidityWeight    float64 `json:"humidity_weight"`

	// TemperatureDecay is the score lost per degree Celsius outside the
	// crop's range, from a base of 100.
	TemperatureDecay float64 `json:"temperature_decay_per_degree"`

	// SeasonPenalty is the season term when the current season does not
	// match any of the crop's seasons.
	SeasonPenalty float64 `json:"season_penalty"`

	// SoilFallback is the soil term when the location soil matches none of
	// the crop's soil types.
	SoilFallback float64 `json:"soil_fallback"`

	// HumidityFallback is the humidity term when current humidity falls
	// outside the crop's water-requirement band.
	HumidityFallback float64 `json:"humidity_fallback"`

	// SuitabilityFloor excludes crops scoring at or below this value from
	// recommendations.
	SuitabilityFloor float64 `json:"suitability_floor"`
}

// DefaultScoringParams returns the standard parameter set.
func DefaultScoringParams() ScoringParams {
	return ScoringParams{
		TemperatureWeight: 0.4,
		SeasonWeight:      0.3,
		SoilWeight:        0.2,
		HumidityWeight:    0.1,
		TemperatureDecay:  10,
		SeasonPenalty:     30,
		SoilFallback:      60,
		HumidityFallback:  70,
		SuitabilityFloor:  40,
	}
}

// Normalize returns the defaults when p is the zero value and p unchanged
// otherwise. A configured set keeps its zero fields; a zero penalty or
// fallback is a legitimate tuning choice.
func (p ScoringParams) Normalize() ScoringParams {
	if p == (ScoringParams{}) {
		return DefaultScoringParams()
	}
	return p
}
