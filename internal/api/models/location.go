package models

import "github.com/agrosight/agrosight/internal/catalog"

// Location represents a supported agricultural location.
type Location struct {
	Name            string  `json:"name"`
	Point           Point   `json:"coordinates"`
	District        string  `json:"district"`
	Zone            string  `json:"zone"`
	SoilType        string  `json:"soil_type"`
	ElevationMeters float64 `json:"elevation_m"`
}

// LocationList is the response for the locations listing.
type LocationList struct {
	Locations []Location `json:"locations"`
	Total     int        `json:"total"`
}

// NearestLocation is the response for a nearest-location lookup.
type NearestLocation struct {
	Location   Location `json:"location"`
	DistanceKM float64  `json:"distance_km"`
}

// NewLocation maps a catalog location to its API representation.
func NewLocation(loc catalog.Location) Location {
	return Location{
		Name:            loc.Name,
		Point:           Point{Lat: loc.Point.Lat, Lon: loc.Point.Lon},
		District:        loc.District,
		Zone:            loc.Zone,
		SoilType:        loc.SoilType,
		ElevationMeters: loc.Elevation,
	}
}

// NewLocationList maps catalog locations to the listing response.
func NewLocationList(locs []catalog.Location) LocationList {
	out := LocationList{
		Locations: make([]Location, 0, len(locs)),
		Total:     len(locs),
	}
	for _, loc := range locs {
		out.Locations = append(out.Locations, NewLocation(loc))
	}
	return out
}

// MonitoringSite represents a field monitoring site.
type MonitoringSite struct {
	Name       string   `json:"name"`
	State      string   `json:"state"`
	Climate    string   `json:"climate"`
	Point      Point    `json:"coordinates"`
	MajorCrops []string `json:"major_crops"`
}

// SiteList is the response for the monitoring sites listing.
type SiteList struct {
	Sites []MonitoringSite `json:"sites"`
	Total int              `json:"total"`
}

// NewSiteList maps catalog monitoring sites to the listing response.
func NewSiteList(sites []catalog.MonitoringSite) SiteList {
	out := SiteList{
		Sites: make([]MonitoringSite, 0, len(sites)),
		Total: len(sites),
	}
	for _, site := range sites {
		out.Sites = append(out.Sites, MonitoringSite{
			Name:       site.Name,
			State:      site.State,
			Climate:    site.Climate,
			Point:      Point{Lat: site.Point.Lat, Lon: site.Point.Lon},
			MajorCrops: site.MajorCrops,
		})
	}
	return out
}
