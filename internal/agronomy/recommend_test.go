package agronomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/catalog"
)

func TestRecommender_Recommend_OrderedAndTruncated(t *testing.T) {
	cat := catalog.New()
	rec := agronomy.NewRecommender(cat, agronomy.DefaultScoringParams())
	loc, err := cat.Location("Mysore")
	require.NoError(t, err)
	snap := testSnapshot(26, 70)

	results := rec.Recommend(loc, snap, julyNoon, 3)

	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"results must be sorted by descending score")
	}
	for _, r := range results {
		assert.Greater(t, r.Score, agronomy.DefaultScoringParams().SuitabilityFloor)
		assert.NotEmpty(t, r.Factors)
	}
}

func TestRecommender_Recommend_DefaultCount(t *testing.T) {
	cat := catalog.New()
	rec := agronomy.NewRecommender(cat, agronomy.DefaultScoringParams())
	loc, err := cat.Location("Bangalore")
	require.NoError(t, err)
	snap := testSnapshot(25, 60)

	defaulted := rec.Recommend(loc, snap, julyNoon, 0)
	explicit := rec.Recommend(loc, snap, julyNoon, agronomy.DefaultTopN)
	assert.Equal(t, explicit, defaulted, "non-positive count falls back to the default")
}

func TestRecommender_Recommend_SmallerCountIsPrefix(t *testing.T) {
	cat := catalog.New()
	rec := agronomy.NewRecommender(cat, agronomy.DefaultScoringParams())
	loc, err := cat.Location("Mangalore")
	require.NoError(t, err)
	snap := testSnapshot(29, 85)

	five := rec.Recommend(loc, snap, julyNoon, 5)
	two := rec.Recommend(loc, snap, julyNoon, 2)

	require.GreaterOrEqual(t, len(five), len(two))
	assert.Equal(t, five[:len(two)], two,
		"a smaller count must be a prefix of a larger one")
}

func TestRecommender_Recommend_SuitabilityFloor(t *testing.T) {
	cat := catalog.New()
	params := agronomy.DefaultScoringParams()
	params.SuitabilityFloor = 99.5
	rec := agronomy.NewRecommender(cat, params)
	loc, err := cat.Location("Gulbarga")
	require.NoError(t, err)

	// With an extreme floor almost nothing qualifies.
	results := rec.Recommend(loc, testSnapshot(-5, 10), januaryNoon, 10)
	assert.Empty(t, results)
}

func TestRecommender_Recommend_CountClampedToCatalog(t *testing.T) {
	cat := catalog.New()
	rec := agronomy.NewRecommender(cat, agronomy.DefaultScoringParams())
	loc, err := cat.Location("Shimoga")
	require.NoError(t, err)

	results := rec.Recommend(loc, testSnapshot(27, 75), julyNoon, 500)
	assert.LessOrEqual(t, len(results), len(cat.CropNames()))
}
