// Package tuning stores and serves the adjustable scoring parameters, with
// in-memory caching and fallback to compiled-in defaults.
package tuning

import (
	"errors"
	"time"

	"github.com/agrosight/agrosight/internal/agronomy"
)

var (
	// ErrParamsNotFound is returned when no stored parameters exist.
	ErrParamsNotFound = errors.New("scoring parameters not found")

	// ErrInvalidParams is returned when submitted parameters fail validation.
	ErrInvalidParams = errors.New("invalid scoring parameters")
)

// StoredParams is a persisted scoring parameter set.
type StoredParams struct {
	Params    agronomy.ScoringParams `json:"params"`
	UpdatedAt time.Time              `json:"updated_at"`
	UpdatedBy string                 `json:"updated_by,omitempty"`
}

// Validate checks a parameter set for internal consistency. Weights must be
// non-negative and sum to 1 within a small tolerance; fallback scores and
// the suitability floor must stay in [0,100].
func Validate(p agronomy.ScoringParams) error {
	weights := []float64{p.TemperatureWeight, p.SeasonWeight, p.SoilWeight, p.HumidityWeight}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return ErrInvalidParams
		}
		sum += w
	}
	if sum < 0.99 || sum > 1.01 {
		return ErrInvalidParams
	}

	if p.TemperatureDecay < 0 {
		return ErrInvalidParams
	}
	for _, v := range []float64{p.SeasonPenalty, p.SoilFallback, p.HumidityFallback, p.SuitabilityFloor} {
		if v < 0 || v > 100 {
			return ErrInvalidParams
		}
	}
	return nil
}
