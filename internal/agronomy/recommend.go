package agronomy

import (
	"sort"
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// DefaultTopN is the default number of crops returned by Recommend.
const DefaultTopN = 3

// SuitabilityResult is one scored crop for a (location, weather) pair.
type SuitabilityResult struct {
	Crop    catalog.Crop
	Score   float64
	Factors []string
}

// Recommender ranks catalog crops by suitability.
type Recommender struct {
	catalog *catalog.Catalog
	scorer  *Scorer
}

// NewRecommender creates a recommender over the given catalog.
func NewRecommender(cat *catalog.Catalog, params ScoringParams) *Recommender {
	return &Recommender{
		catalog: cat,
		scorer:  NewScorer(params),
	}
}

// Scorer returns the underlying scorer.
func (r *Recommender) Scorer() *Scorer {
	return r.scorer
}

// Recommend scores every crop in the catalog for the location and weather,
// drops crops at or below the suitability floor, and returns the topN
// highest scorers in descending score order. Ties keep canonical catalog
// order (stable sort over the sorted crop list). topN values below 1 fall
// back to DefaultTopN.
func (r *Recommender) Recommend(loc catalog.Location, snap *weather.Snapshot, now time.Time, topN int) []SuitabilityResult {
	if topN < 1 {
		topN = DefaultTopN
	}

	crops := r.catalog.Crops()
	results := make([]SuitabilityResult, 0, len(crops))
	for _, crop := range crops {
		score, factors := r.scorer.Score(crop, snap, loc, now)
		if score <= r.scorer.params.SuitabilityFloor {
			continue
		}
		results = append(results, SuitabilityResult{
			Crop:    crop,
			Score:   score,
			Factors: factors,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}
