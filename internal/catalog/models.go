// Package catalog holds the static agricultural reference data: the
// Karnataka locations served by the recommendation engine, the crop
// knowledge base, and the pan-India monitoring sites. All data is loaded
// at construction time and never mutated.
package catalog

import "errors"

// Catalog errors.
var (
	ErrLocationNotFound = errors.New("location not found in catalog")
	ErrCropNotFound     = errors.New("crop not found in catalog")
	ErrSiteNotFound     = errors.New("monitoring site not found in catalog")
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a Karnataka location with agronomic attributes.
type Location struct {
	Name      string  `json:"name"`
	Point     Point   `json:"coordinates"`
	District  string  `json:"district"`
	Zone      string  `json:"zone"`
	SoilType  string  `json:"soil_type"`
	Elevation float64 `json:"elevation_m"`
}

// Season is an Indian agricultural season.
type Season string

const (
	SeasonKharif    Season = "Kharif"     // June-October, monsoon
	SeasonRabi      Season = "Rabi"       // November-March, winter
	SeasonSummer    Season = "Summer"     // April-May
	SeasonYearRound Season = "Year Round" // crops grown in any season
)

// WaterRequirement categorizes how much water a crop needs.
type WaterRequirement string

const (
	WaterLow      WaterRequirement = "Low"
	WaterMedium   WaterRequirement = "Medium"
	WaterHigh     WaterRequirement = "High"
	WaterVeryHigh WaterRequirement = "Very High"
)

// TemperatureRange is an inclusive range in degrees Celsius.
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether t lies within the range, bounds inclusive.
func (r TemperatureRange) Contains(t float64) bool {
	return t >= r.Min && t <= r.Max
}

// RainfallRange is an annual rainfall requirement in millimeters.
type RainfallRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Crop is a crop knowledge base record.
type Crop struct {
	Name             string           `json:"name"`
	Seasons          []Season         `json:"seasons"`
	WaterRequirement WaterRequirement `json:"water_requirement"`
	TemperatureRange TemperatureRange `json:"temperature_range_c"`
	RainfallRange    RainfallRange    `json:"rainfall_requirement_mm"`
	SoilTypes        []string         `json:"soil_types"`
	GrowthDuration   int              `json:"growth_duration_days"`
	YieldPerAcre     string           `json:"yield_per_acre"`
	Investment       string           `json:"investment"`
}

// SupportsSeason reports whether the crop can be grown in the given season.
// Year-round crops match every season.
func (c Crop) SupportsSeason(s Season) bool {
	for _, cs := range c.Seasons {
		if cs == s || cs == SeasonYearRound {
			return true
		}
	}
	return false
}

// MonitoringSite is a pan-India field monitoring reference site.
type MonitoringSite struct {
	Name       string   `json:"name"`
	State      string   `json:"state"`
	Climate    string   `json:"climate"`
	Point      Point    `json:"coordinates"`
	MajorCrops []string `json:"major_crops"`
}
