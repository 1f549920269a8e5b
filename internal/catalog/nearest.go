package catalog

import "math"

// Nearest returns the catalog location closest to the given coordinates,
// along with the great-circle distance in meters.
func (c *Catalog) Nearest(lat, lon float64) (Location, float64, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Location{}, 0, ErrLocationNotFound
	}

	var (
		best     Location
		bestDist = math.Inf(1)
	)
	for _, name := range c.locationNames {
		loc := c.locations[name]
		d := haversineDistance(lat, lon, loc.Point.Lat, loc.Point.Lon)
		if d < bestDist {
			best = loc
			bestDist = d
		}
	}
	if math.IsInf(bestDist, 1) {
		return Location{}, 0, ErrLocationNotFound
	}
	return best, bestDist, nil
}

// haversineDistance returns the distance between two points in meters.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
