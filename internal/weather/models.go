package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
)

// Snapshot represents current weather conditions at a location.
type Snapshot struct {
	// Location is the catalog location name the snapshot was fetched for.
	Location string

	// Temperature in Celsius
	Temperature float64

	// Humidity percentage (0-100)
	Humidity float64

	// Condition and free-text description
	Condition   Condition
	Description string

	// WindSpeed in m/s
	WindSpeed float64

	// Atmospheric pressure in hPa
	Pressure float64

	// Visibility in kilometers
	Visibility float64

	// UVIndex (0-11+)
	UVIndex int

	// Timestamps
	ObservedAt time.Time
	FetchedAt  time.Time
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionMist         Condition = "MIST"
	ConditionHaze         Condition = "HAZE"
	ConditionUnknown      Condition = "UNKNOWN"
)

// HumidityBand categorizes humidity for crop water-requirement matching.
type HumidityBand string

const (
	HumidityDry      HumidityBand = "DRY"      // < 50%
	HumidityModerate HumidityBand = "MODERATE" // 50-70%
	HumidityHumid    HumidityBand = "HUMID"    // > 70%
)

// GetHumidityBand returns the humidity band for the snapshot.
func (s *Snapshot) GetHumidityBand() HumidityBand {
	switch {
	case s.Humidity < 50:
		return HumidityDry
	case s.Humidity <= 70:
		return HumidityModerate
	default:
		return HumidityHumid
	}
}
