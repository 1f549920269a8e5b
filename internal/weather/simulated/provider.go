// Package simulated implements a demo weather provider that generates
// plausible Karnataka conditions from an injected pseudo-random source.
// Used when no OpenWeatherMap API key is configured.
package simulated

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// ProviderName identifies the simulated provider.
const ProviderName = "simulated"

// Provider generates simulated weather snapshots.
// All randomness comes from the injected source so tests can fix the seed.
type Provider struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates a simulated provider from a pseudo-random source.
// If rng is nil, a time-seeded source is used.
func New(rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{rng: rng, now: time.Now}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

var descriptions = []struct {
	condition weather.Condition
	text      string
}{
	{weather.ConditionClear, "clear sky"},
	{weather.ConditionClouds, "few clouds"},
	{weather.ConditionClouds, "scattered clouds"},
	{weather.ConditionRain, "light rain"},
}

// Fetch generates a snapshot for the location. Elevation nudges the
// baseline temperature down so hill stations read cooler than the coast.
func (p *Provider) Fetch(_ context.Context, loc catalog.Location) (*weather.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	baseTemp := 25 - loc.Elevation/300 + p.rng.Float64()*15 - 5
	humidity := 60 + p.rng.Float64()*50 - 20
	desc := descriptions[p.rng.Intn(len(descriptions))]

	now := p.now()
	return &weather.Snapshot{
		Location:    loc.Name,
		Temperature: round1(baseTemp),
		Humidity:    round1(math.Max(30, math.Min(90, humidity))),
		Condition:   desc.condition,
		Description: desc.text,
		WindSpeed:   round1(2 + p.rng.Float64()*13),
		Pressure:    round1(1013 + p.rng.Float64()*40 - 20),
		Visibility:  round1(8 + p.rng.Float64()*7),
		UVIndex:     3 + p.rng.Intn(9),
		ObservedAt:  now,
		FetchedAt:   now,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
