package catalog_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/catalog"
)

func TestCatalog_LocationLookup(t *testing.T) {
	c := catalog.New()

	loc, err := c.Location("Bangalore")
	require.NoError(t, err)
	assert.Equal(t, "Bangalore Urban", loc.District)
	assert.Equal(t, "Red Sandy Loam", loc.SoilType)
	assert.InDelta(t, 12.9716, loc.Point.Lat, 0.001)

	_, err = c.Location("Atlantis")
	assert.ErrorIs(t, err, catalog.ErrLocationNotFound)
}

func TestCatalog_CropLookup(t *testing.T) {
	c := catalog.New()

	crop, err := c.Crop("Ragi")
	require.NoError(t, err)
	assert.Equal(t, catalog.WaterLow, crop.WaterRequirement)
	assert.Equal(t, 90, crop.GrowthDuration)
	assert.Equal(t, []catalog.Season{catalog.SeasonKharif}, crop.Seasons)

	_, err = c.Crop("Wheat")
	assert.ErrorIs(t, err, catalog.ErrCropNotFound)
}

func TestCatalog_SiteLookup(t *testing.T) {
	c := catalog.New()

	site, err := c.Site("Kota")
	require.NoError(t, err)
	assert.Equal(t, "Rajasthan", site.State)
	assert.Equal(t, "Arid", site.Climate)

	_, err = c.Site("Bangalore")
	assert.ErrorIs(t, err, catalog.ErrSiteNotFound)
}

func TestCatalog_CanonicalOrder(t *testing.T) {
	c := catalog.New()

	names := c.CropNames()
	assert.True(t, sort.StringsAreSorted(names), "crop names should be sorted")
	assert.Len(t, names, 10)

	crops := c.Crops()
	require.Len(t, crops, len(names))
	for i, crop := range crops {
		assert.Equal(t, names[i], crop.Name)
	}

	locNames := c.LocationNames()
	assert.True(t, sort.StringsAreSorted(locNames))
	assert.Len(t, locNames, 8)
}

func TestCrop_SupportsSeason(t *testing.T) {
	c := catalog.New()

	sugarcane, err := c.Crop("Sugarcane")
	require.NoError(t, err)
	for _, s := range []catalog.Season{catalog.SeasonKharif, catalog.SeasonRabi, catalog.SeasonSummer} {
		assert.True(t, sugarcane.SupportsSeason(s), "year-round crop should match %s", s)
	}

	ragi, err := c.Crop("Ragi")
	require.NoError(t, err)
	assert.True(t, ragi.SupportsSeason(catalog.SeasonKharif))
	assert.False(t, ragi.SupportsSeason(catalog.SeasonRabi))
}

func TestTemperatureRange_Contains(t *testing.T) {
	r := catalog.TemperatureRange{Min: 18, Max: 32}
	assert.True(t, r.Contains(18))
	assert.True(t, r.Contains(32))
	assert.True(t, r.Contains(25))
	assert.False(t, r.Contains(17.9))
	assert.False(t, r.Contains(32.1))
}

func TestCatalog_Nearest(t *testing.T) {
	c := catalog.New()

	// Coordinates just north of Mysore.
	loc, dist, err := c.Nearest(12.35, 76.65)
	require.NoError(t, err)
	assert.Equal(t, "Mysore", loc.Name)
	assert.Less(t, dist, 15000.0, "should be within 15km of Mysore")

	// At an exact catalog point the distance is ~0.
	loc, dist, err = c.Nearest(15.8497, 74.4977)
	require.NoError(t, err)
	assert.Equal(t, "Belgaum", loc.Name)
	assert.Less(t, dist, 1.0)

	_, _, err = c.Nearest(123, 45)
	assert.ErrorIs(t, err, catalog.ErrLocationNotFound)
}
