package tuning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/tuning"
)

// failingRepository always errors, simulating storage trouble.
type failingRepository struct{}

func (failingRepository) GetParams(context.Context) (*tuning.StoredParams, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) SetParams(context.Context, *tuning.StoredParams) error {
	return errors.New("connection refused")
}

func (failingRepository) DeleteParams(context.Context) error {
	return errors.New("connection refused")
}

func TestService_Current_DefaultsWhenNothingStored(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
	})

	params := svc.Current(context.Background())
	assert.Equal(t, agronomy.DefaultScoringParams(), params)
}

func TestService_Current_StoredParamsWin(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
	})

	custom := agronomy.DefaultScoringParams()
	custom.SuitabilityFloor = 55

	_, err := svc.Update(context.Background(), custom, "admin@test")
	require.NoError(t, err)

	params := svc.Current(context.Background())
	assert.Equal(t, 55.0, params.SuitabilityFloor)
}

func TestService_Current_FallsBackOnRepositoryError(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: failingRepository{},
	})

	params := svc.Current(context.Background())
	assert.Equal(t, agronomy.DefaultScoringParams(), params)
}

func TestService_Current_CachesWithinTTL(t *testing.T) {
	repo := tuning.NewMemoryRepository()
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: repo,
		CacheTTL:   time.Hour,
	})

	custom := agronomy.DefaultScoringParams()
	custom.SeasonPenalty = 20
	_, err := svc.Update(context.Background(), custom, "admin@test")
	require.NoError(t, err)

	// A direct repository write behind the service's back is invisible
	// until the cache expires or is invalidated.
	sneaky := agronomy.DefaultScoringParams()
	sneaky.SeasonPenalty = 75
	require.NoError(t, repo.SetParams(context.Background(), &tuning.StoredParams{
		Params:    sneaky,
		UpdatedAt: time.Now(),
	}))

	assert.Equal(t, 20.0, svc.Current(context.Background()).SeasonPenalty)

	svc.InvalidateCache()
	assert.Equal(t, 75.0, svc.Current(context.Background()).SeasonPenalty)
}

func TestService_Update_RejectsInvalidParams(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
	})

	bad := agronomy.DefaultScoringParams()
	bad.TemperatureWeight = 0.9 // weights no longer sum to 1

	_, err := svc.Update(context.Background(), bad, "admin@test")
	assert.ErrorIs(t, err, tuning.ErrInvalidParams)
}

func TestService_Update_RejectsMissingWeights(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
	})

	partial := agronomy.ScoringParams{SuitabilityFloor: 50}
	_, err := svc.Update(context.Background(), partial, "admin@test")
	assert.ErrorIs(t, err, tuning.ErrInvalidParams)
}

func TestService_Update_PreservesDeliberateZeros(t *testing.T) {
	repo := tuning.NewMemoryRepository()
	svc := tuning.NewService(tuning.ServiceConfig{Repository: repo})

	params := agronomy.DefaultScoringParams()
	params.SeasonPenalty = 0
	params.SoilFallback = 0

	stored, err := svc.Update(context.Background(), params, "admin@test")
	require.NoError(t, err)
	assert.Zero(t, stored.Params.SeasonPenalty)
	assert.Zero(t, stored.Params.SoilFallback)
	assert.Equal(t, "admin@test", stored.UpdatedBy)
	assert.False(t, stored.UpdatedAt.IsZero())

	// Zeros survive a cache-miss reload from storage.
	svc.InvalidateCache()
	current := svc.Current(context.Background())
	assert.Zero(t, current.SeasonPenalty)
	assert.Zero(t, current.SoilFallback)
}

func TestService_Reset(t *testing.T) {
	svc := tuning.NewService(tuning.ServiceConfig{
		Repository: tuning.NewMemoryRepository(),
	})

	custom := agronomy.DefaultScoringParams()
	custom.SoilFallback = 45
	_, err := svc.Update(context.Background(), custom, "admin@test")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background()))
	assert.Equal(t, agronomy.DefaultScoringParams(), svc.Current(context.Background()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*agronomy.ScoringParams)
		wantErr bool
	}{
		{"defaults pass", func(*agronomy.ScoringParams) {}, false},
		{"negative weight", func(p *agronomy.ScoringParams) { p.SoilWeight = -0.2; p.TemperatureWeight = 0.8 }, true},
		{"weights exceed one", func(p *agronomy.ScoringParams) { p.HumidityWeight = 0.5 }, true},
		{"floor above 100", func(p *agronomy.ScoringParams) { p.SuitabilityFloor = 120 }, true},
		{"negative decay", func(p *agronomy.ScoringParams) { p.TemperatureDecay = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := agronomy.DefaultScoringParams()
			tt.mutate(&p)
			err := tuning.Validate(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, tuning.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
