package models

import (
	"github.com/agrosight/agrosight/internal/catalog"
	"github.com/agrosight/agrosight/internal/weather"
)

// Weather represents current conditions at a location.
type Weather struct {
	Location     string    `json:"location"`
	TemperatureC float64   `json:"temperature_c"`
	HumidityPct  float64   `json:"humidity_pct"`
	Condition    string    `json:"condition"`
	Description  string    `json:"description"`
	WindSpeedMS  float64   `json:"wind_speed_ms"`
	PressureHPA  float64   `json:"pressure_hpa"`
	VisibilityKM float64   `json:"visibility_km"`
	UVIndex      int       `json:"uv_index"`
	Season       string    `json:"season"`
	ObservedAt   Timestamp `json:"observed_at"`
	FetchedAt    Timestamp `json:"fetched_at"`
}

// NewWeather maps a weather snapshot and the current season to the API
// representation.
func NewWeather(snap *weather.Snapshot, season catalog.Season) Weather {
	return Weather{
		Location:     snap.Location,
		TemperatureC: snap.Temperature,
		HumidityPct:  snap.Humidity,
		Condition:    string(snap.Condition),
		Description:  snap.Description,
		WindSpeedMS:  snap.WindSpeed,
		PressureHPA:  snap.Pressure,
		VisibilityKM: snap.Visibility,
		UVIndex:      snap.UVIndex,
		Season:       string(season),
		ObservedAt:   Timestamp(snap.ObservedAt),
		FetchedAt:    Timestamp(snap.FetchedAt),
	}
}
