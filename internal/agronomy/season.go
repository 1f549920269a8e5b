package agronomy

import (
	"time"

	"github.com/agrosight/agrosight/internal/catalog"
)

// SeasonForTime returns the agricultural season for the given time.
// The month mapping is fixed: June-October is Kharif, November-March is
// Rabi, April-May is Summer.
func SeasonForTime(t time.Time) catalog.Season {
	switch t.Month() {
	case time.June, time.July, time.August, time.September, time.October:
		return catalog.SeasonKharif
	case time.November, time.December, time.January, time.February, time.March:
		return catalog.SeasonRabi
	default:
		return catalog.SeasonSummer
	}
}

// SeasonDescription returns a short description of the season.
func SeasonDescription(s catalog.Season) string {
	switch s {
	case catalog.SeasonKharif:
		return "Monsoon season (June-October): high rainfall, suitable for water-intensive crops"
	case catalog.SeasonRabi:
		return "Winter season (November-March): cool and dry, ideal for wheat, gram, and vegetables"
	case catalog.SeasonSummer:
		return "Hot season (April-May): limited cultivation, suitable for heat-tolerant crops"
	default:
		return "Season information not available"
	}
}

// SeasonalAdvice returns general farming recommendations for the season.
func SeasonalAdvice(s catalog.Season) []string {
	switch s {
	case catalog.SeasonKharif:
		return []string{
			"Take advantage of monsoon rains for water-intensive crops",
			"Ensure proper drainage to prevent waterlogging",
			"Monitor for fungal diseases due to high humidity",
			"Consider rice, cotton, sugarcane, and pulses",
		}
	case catalog.SeasonRabi:
		return []string{
			"Focus on efficient irrigation systems",
			"Utilize residual soil moisture from monsoon",
			"Plant wheat, gram, mustard, and winter vegetables",
			"Prepare for harvest during favorable weather",
		}
	case catalog.SeasonSummer:
		return []string{
			"Conserve water with drip irrigation",
			"Consider heat-tolerant and drought-resistant varieties",
			"Focus on high-value crops like vegetables under shade",
			"Prepare land for upcoming Kharif season",
		}
	default:
		return []string{"General farming practices recommended"}
	}
}
