package catalog

import "sort"

// Catalog provides validated lookups over the static reference data.
// Construct once at process start with New; safe for concurrent use.
type Catalog struct {
	locations map[string]Location
	crops     map[string]Crop
	sites     map[string]MonitoringSite

	locationNames []string
	cropNames     []string
	siteNames     []string
}

// New builds the catalog from the built-in reference tables.
func New() *Catalog {
	c := &Catalog{
		locations: make(map[string]Location, len(karnatakaLocations)),
		crops:     make(map[string]Crop, len(cropDatabase)),
		sites:     make(map[string]MonitoringSite, len(monitoringSites)),
	}

	for _, loc := range karnatakaLocations {
		c.locations[loc.Name] = loc
		c.locationNames = append(c.locationNames, loc.Name)
	}
	for _, crop := range cropDatabase {
		c.crops[crop.Name] = crop
		c.cropNames = append(c.cropNames, crop.Name)
	}
	for _, site := range monitoringSites {
		c.sites[site.Name] = site
		c.siteNames = append(c.siteNames, site.Name)
	}

	// Canonical iteration order for deterministic scoring and stable
	// tie-breaks in recommendations.
	sort.Strings(c.locationNames)
	sort.Strings(c.cropNames)
	sort.Strings(c.siteNames)

	return c
}

// Location returns the location with the given name.
func (c *Catalog) Location(name string) (Location, error) {
	loc, ok := c.locations[name]
	if !ok {
		return Location{}, ErrLocationNotFound
	}
	return loc, nil
}

// Crop returns the crop with the given name.
func (c *Catalog) Crop(name string) (Crop, error) {
	crop, ok := c.crops[name]
	if !ok {
		return Crop{}, ErrCropNotFound
	}
	return crop, nil
}

// Site returns the monitoring site with the given name.
func (c *Catalog) Site(name string) (MonitoringSite, error) {
	site, ok := c.sites[name]
	if !ok {
		return MonitoringSite{}, ErrSiteNotFound
	}
	return site, nil
}

// Locations returns all locations in canonical (sorted name) order.
func (c *Catalog) Locations() []Location {
	out := make([]Location, 0, len(c.locationNames))
	for _, name := range c.locationNames {
		out = append(out, c.locations[name])
	}
	return out
}

// Crops returns all crops in canonical (sorted name) order.
func (c *Catalog) Crops() []Crop {
	out := make([]Crop, 0, len(c.cropNames))
	for _, name := range c.cropNames {
		out = append(out, c.crops[name])
	}
	return out
}

// Sites returns all monitoring sites in canonical (sorted name) order.
func (c *Catalog) Sites() []MonitoringSite {
	out := make([]MonitoringSite, 0, len(c.siteNames))
	for _, name := range c.siteNames {
		out = append(out, c.sites[name])
	}
	return out
}

// LocationNames returns the sorted location names, for valid-options lists
// in error responses.
func (c *Catalog) LocationNames() []string {
	return append([]string(nil), c.locationNames...)
}

// CropNames returns the sorted crop names.
func (c *Catalog) CropNames() []string {
	return append([]string(nil), c.cropNames...)
}

// SiteNames returns the sorted monitoring site names.
func (c *Catalog) SiteNames() []string {
	return append([]string(nil), c.siteNames...)
}

// karnatakaLocations is the Karnataka location reference set served by the
// crop recommendation engine.
var karnatakaLocations = []Location{
	{
		Name:      "Bangalore",
		Point:     Point{Lat: 12.9716, Lon: 77.5946},
		District:  "Bangalore Urban",
		Zone:      "Eastern Dry Zone",
		SoilType:  "Red Sandy Loam",
		Elevation: 920,
	},
	{
		Name:      "Mysore",
		Point:     Point{Lat: 12.2958, Lon: 76.6394},
		District:  "Mysore",
		Zone:      "Southern Dry Zone",
		SoilType:  "Red Clay Loam",
		Elevation: 770,
	},
	{
		Name:      "Hubli",
		Point:     Point{Lat: 15.3647, Lon: 75.1240},
		District:  "Dharwad",
		Zone:      "Northern Transition Zone",
		SoilType:  "Black Cotton Soil",
		Elevation: 650,
	},
	{
		Name:      "Mangalore",
		Point:     Point{Lat: 12.9141, Lon: 74.8560},
		District:  "Dakshina Kannada",
		Zone:      "Coastal Zone",
		SoilType:  "Laterite Soil",
		Elevation: 22,
	},
	{
		Name:      "Belgaum",
		Point:     Point{Lat: 15.8497, Lon: 74.4977},
		District:  "Belgaum",
		Zone:      "Northern Dry Zone",
		SoilType:  "Black Cotton Soil",
		Elevation: 779,
	},
	{
		Name:      "Gulbarga",
		Point:     Point{Lat: 17.3297, Lon: 76.8343},
		District:  "Gulbarga",
		Zone:      "North Eastern Dry Zone",
		SoilType:  "Black Clayey Soil",
		Elevation: 458,
	},
	{
		Name:      "Shimoga",
		Point:     Point{Lat: 13.9299, Lon: 75.5681},
		District:  "Shimoga",
		Zone:      "Central Dry Zone",
		SoilType:  "Red Laterite Soil",
		Elevation: 569,
	},
	{
		Name:      "Hassan",
		Point:     Point{Lat: 13.0073, Lon: 76.0962},
		District:  "Hassan",
		Zone:      "Southern Transition Zone",
		SoilType:  "Red Clay Loam",
		Elevation: 980,
	},
}

// cropDatabase is the crop knowledge base.
var cropDatabase = []Crop{
	{
		Name:             "Rice",
		Seasons:          []Season{SeasonKharif, SeasonRabi},
		WaterRequirement: WaterHigh,
		TemperatureRange: TemperatureRange{Min: 20, Max: 35},
		RainfallRange:    RainfallRange{Min: 1000, Max: 2500},
		SoilTypes:        []string{"Clay", "Clay Loam"},
		GrowthDuration:   120,
		YieldPerAcre:     "25-30 quintals",
		Investment:       "₹25,000-30,000 per acre",
	},
	{
		Name:             "Ragi",
		Seasons:          []Season{SeasonKharif},
		WaterRequirement: WaterLow,
		TemperatureRange: TemperatureRange{Min: 18, Max: 32},
		RainfallRange:    RainfallRange{Min: 400, Max: 750},
		SoilTypes:        []string{"Red Sandy Loam", "Red Clay Loam"},
		GrowthDuration:   90,
		YieldPerAcre:     "8-12 quintals",
		Investment:       "₹15,000-20,000 per acre",
	},
	{
		Name:             "Cotton",
		Seasons:          []Season{SeasonKharif},
		WaterRequirement: WaterMedium,
		TemperatureRange: TemperatureRange{Min: 21, Max: 30},
		RainfallRange:    RainfallRange{Min: 500, Max: 1000},
		SoilTypes:        []string{"Black Cotton Soil", "Red Sandy Loam"},
		GrowthDuration:   180,
		YieldPerAcre:     "8-15 quintals",
		Investment:       "₹40,000-50,000 per acre",
	},
	{
		Name:             "Sugarcane",
		Seasons:          []Season{SeasonYearRound},
		WaterRequirement: WaterVeryHigh,
		TemperatureRange: TemperatureRange{Min: 20, Max: 35},
		RainfallRange:    RainfallRange{Min: 1000, Max: 1500},
		SoilTypes:        []string{"Clay Loam", "Black Cotton Soil"},
		GrowthDuration:   365,
		YieldPerAcre:     "400-500 quintals",
		Investment:       "₹80,000-1,00,000 per acre",
	},
	{
		Name:             "Groundnut",
		Seasons:          []Season{SeasonKharif, SeasonRabi},
		WaterRequirement: WaterMedium,
		TemperatureRange: TemperatureRange{Min: 20, Max: 30},
		RainfallRange:    RainfallRange{Min: 500, Max: 750},
		SoilTypes:        []string{"Red Sandy Loam", "Black Cotton Soil"},
		GrowthDuration:   110,
		YieldPerAcre:     "15-20 quintals",
		Investment:       "₹25,000-35,000 per acre",
	},
	{
		Name:             "Maize",
		Seasons:          []Season{SeasonKharif, SeasonRabi},
		WaterRequirement: WaterMedium,
		TemperatureRange: TemperatureRange{Min: 15, Max: 35},
		RainfallRange:    RainfallRange{Min: 600, Max: 1000},
		SoilTypes:        []string{"Red Sandy Loam", "Black Cotton Soil"},
		GrowthDuration:   90,
		YieldPerAcre:     "25-35 quintals",
		Investment:       "₹20,000-25,000 per acre",
	},
	{
		Name:             "Soybean",
		Seasons:          []Season{SeasonKharif},
		WaterRequirement: WaterMedium,
		TemperatureRange: TemperatureRange{Min: 20, Max: 30},
		RainfallRange:    RainfallRange{Min: 450, Max: 700},
		SoilTypes:        []string{"Black Cotton Soil", "Red Clay Loam"},
		GrowthDuration:   95,
		YieldPerAcre:     "12-18 quintals",
		Investment:       "₹18,000-25,000 per acre",
	},
	{
		Name:             "Tomato",
		Seasons:          []Season{SeasonRabi, SeasonSummer},
		WaterRequirement: WaterHigh,
		TemperatureRange: TemperatureRange{Min: 18, Max: 27},
		RainfallRange:    RainfallRange{Min: 600, Max: 1250},
		SoilTypes:        []string{"Red Sandy Loam", "Clay Loam"},
		GrowthDuration:   75,
		YieldPerAcre:     "200-300 quintals",
		Investment:       "₹60,000-80,000 per acre",
	},
	{
		Name:             "Onion",
		Seasons:          []Season{SeasonRabi},
		WaterRequirement: WaterMedium,
		TemperatureRange: TemperatureRange{Min: 13, Max: 24},
		RainfallRange:    RainfallRange{Min: 650, Max: 750},
		SoilTypes:        []string{"Red Sandy Loam", "Black Cotton Soil"},
		GrowthDuration:   120,
		YieldPerAcre:     "150-250 quintals",
		Investment:       "₹50,000-70,000 per acre",
	},
	{
		Name:             "Coconut",
		Seasons:          []Season{SeasonYearRound},
		WaterRequirement: WaterHigh,
		TemperatureRange: TemperatureRange{Min: 20, Max: 32},
		RainfallRange:    RainfallRange{Min: 1200, Max: 2000},
		SoilTypes:        []string{"Laterite Soil", "Clay Loam"},
		GrowthDuration:   2555, // seven years to first fruiting
		YieldPerAcre:     "80-120 nuts per tree",
		Investment:       "₹1,50,000-2,00,000 per acre",
	},
}

// monitoringSites is the pan-India field monitoring reference set.
var monitoringSites = []MonitoringSite{
	{
		Name:       "Anand",
		State:      "Gujarat",
		Climate:    "Semi-arid",
		Point:      Point{Lat: 22.5645, Lon: 72.9289},
		MajorCrops: []string{"Cotton", "Wheat", "Sugarcane", "Tobacco"},
	},
	{
		Name:       "Jhagdia",
		State:      "Gujarat",
		Climate:    "Humid",
		Point:      Point{Lat: 21.7500, Lon: 73.1500},
		MajorCrops: []string{"Rice", "Cotton", "Sugarcane", "Banana"},
	},
	{
		Name:       "Kota",
		State:      "Rajasthan",
		Climate:    "Arid",
		Point:      Point{Lat: 25.2138, Lon: 75.8648},
		MajorCrops: []string{"Wheat", "Soybean", "Mustard", "Coriander"},
	},
	{
		Name:       "Maddur",
		State:      "Karnataka",
		Climate:    "Tropical",
		Point:      Point{Lat: 12.5847, Lon: 77.0128},
		MajorCrops: []string{"Rice", "Ragi", "Coconut", "Areca nut"},
	},
	{
		Name:       "Talala",
		State:      "Gujarat",
		Climate:    "Coastal",
		Point:      Point{Lat: 21.3500, Lon: 70.3000},
		MajorCrops: []string{"Groundnut", "Cotton", "Mango", "Coconut"},
	},
}
