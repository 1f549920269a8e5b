package weather_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// stubProvider returns canned snapshots and counts fetches.
type stubProvider struct {
	mu      sync.Mutex
	fetches int
	err     error
}

func (p *stubProvider) Fetch(_ context.Context, loc catalog.Location) (*weather.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	return &weather.Snapshot{
		Location:    loc.Name,
		Temperature: 24.5,
		Humidity:    62,
		Condition:   weather.ConditionClouds,
		Description: "scattered clouds",
		ObservedAt:  time.Now(),
		FetchedAt:   time.Now(),
	}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) fetchCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches
}

func testLocation(t *testing.T) catalog.Location {
	t.Helper()
	loc, err := catalog.New().Location("Bangalore")
	require.NoError(t, err)
	return loc
}

func TestService_Current_CachesByLocation(t *testing.T) {
	provider := &stubProvider{}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider})
	loc := testLocation(t)

	first, err := svc.Current(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "Bangalore", first.Location)

	second, err := svc.Current(context.Background(), loc)
	require.NoError(t, err)
	assert.Same(t, first, second, "second read must come from cache")
	assert.Equal(t, 1, provider.fetchCount())
}

func TestService_Current_ExpiredEntryRefetches(t *testing.T) {
	provider := &stubProvider{}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		CacheTTL: time.Nanosecond,
	})
	loc := testLocation(t)

	_, err := svc.Current(context.Background(), loc)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = svc.Current(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.fetchCount())
}

func TestService_Current_StaleIfError(t *testing.T) {
	provider := &stubProvider{}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		CacheTTL: time.Nanosecond,
	})
	loc := testLocation(t)

	good, err := svc.Current(context.Background(), loc)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	provider.err = errors.New("upstream down")
	stale, err := svc.Current(context.Background(), loc)
	require.NoError(t, err, "stale data should be served while within the stale TTL")
	assert.Same(t, good, stale)
}

func TestService_Current_ProviderErrorWithoutCache(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider})

	_, err := svc.Current(context.Background(), testLocation(t))
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestService_Current_NoDataPassesThrough(t *testing.T) {
	provider := &stubProvider{err: weather.ErrNoDataForLocation}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider})

	_, err := svc.Current(context.Background(), testLocation(t))
	assert.ErrorIs(t, err, weather.ErrNoDataForLocation)
	assert.NotErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &stubProvider{}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider})
	loc := testLocation(t)

	_, err := svc.Current(context.Background(), loc)
	require.NoError(t, err)

	svc.InvalidateCache()
	stats := svc.CacheStats()
	assert.Equal(t, 0, stats.Entries)

	_, err = svc.Current(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.fetchCount())
}

func TestService_CacheStats(t *testing.T) {
	provider := &stubProvider{}
	svc := weather.NewService(weather.ServiceConfig{Provider: provider})
	cat := catalog.New()

	for _, name := range []string{"Bangalore", "Mysore", "Hubli"} {
		loc, err := cat.Location(name)
		require.NoError(t, err)
		_, err = svc.Current(context.Background(), loc)
		require.NoError(t, err)
	}

	stats := svc.CacheStats()
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 3, stats.FreshEntries)
	assert.Equal(t, "stub", stats.Provider)
}

func TestSnapshot_GetHumidityBand(t *testing.T) {
	tests := []struct {
		humidity float64
		want     weather.HumidityBand
	}{
		{10, weather.HumidityDry},
		{49.9, weather.HumidityDry},
		{50, weather.HumidityModerate},
		{70, weather.HumidityModerate},
		{70.1, weather.HumidityHumid},
		{95, weather.HumidityHumid},
	}
	for _, tt := range tests {
		snap := &weather.Snapshot{Humidity: tt.humidity}
		assert.Equal(t, tt.want, snap.GetHumidityBand(), "humidity %.1f", tt.humidity)
	}
}
