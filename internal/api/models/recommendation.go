package models

import "github.com/agrosight/agrosight/internal/agronomy"

// Recommendation is one scored crop suggestion.
type Recommendation struct {
	Rank               int      `json:"rank"`
	Crop               string   `json:"crop"`
	Score              float64  `json:"suitability_score"`
	Factors            []string `json:"factors"`
	WaterRequirement   string   `json:"water_requirement"`
	GrowthDurationDays int      `json:"growth_duration_days"`
	YieldPerAcre       string   `json:"yield_per_acre"`
	Investment         string   `json:"investment"`
}

// RecommendationResponse is the response for a recommendations request.
type RecommendationResponse struct {
	Location        string           `json:"location"`
	Season          string           `json:"season"`
	Weather         Weather          `json:"weather"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     Timestamp        `json:"generated_at"`
}

// NewRecommendations maps scored results to their API representation.
func NewRecommendations(results []agronomy.SuitabilityResult) []Recommendation {
	out := make([]Recommendation, 0, len(results))
	for i, result := range results {
		out = append(out, Recommendation{
			Rank:               i + 1,
			Crop:               result.Crop.Name,
			Score:              result.Score,
			Factors:            result.Factors,
			WaterRequirement:   string(result.Crop.WaterRequirement),
			GrowthDurationDays: result.Crop.GrowthDuration,
			YieldPerAcre:       result.Crop.YieldPerAcre,
			Investment:         result.Crop.Investment,
		})
	}
	return out
}

// AnalysisResponse is the response for a comprehensive analysis.
type AnalysisResponse struct {
	AnalysisID        string           `json:"analysis_id"`
	Location          Location         `json:"location"`
	Weather           Weather          `json:"weather"`
	Season            string           `json:"season"`
	SeasonDescription string           `json:"season_description"`
	SeasonalAdvice    []string         `json:"seasonal_advice"`
	Recommendations   []Recommendation `json:"recommendations"`
	GrowthPlans       []GrowthPlan     `json:"growth_plans"`
	GeneratedAt       Timestamp        `json:"generated_at"`
}

// ScoringParamsResponse is the admin view of the active scoring parameters.
type ScoringParamsResponse struct {
	Params    agronomy.ScoringParams `json:"params"`
	Source    string                 `json:"source"` // "stored" or "defaults"
	UpdatedAt *Timestamp             `json:"updated_at,omitempty"`
	UpdatedBy string                 `json:"updated_by,omitempty"`
}
