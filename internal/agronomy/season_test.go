package agronomy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agrosight/agrosight/internal/agronomy"
	"github.com/agrosight/agrosight/internal/catalog"
)

func TestSeasonForTime(t *testing.T) {
	tests := []struct {
		month time.Month
		want  catalog.Season
	}{
		{time.January, catalog.SeasonRabi},
		{time.February, catalog.SeasonRabi},
		{time.March, catalog.SeasonRabi},
		{time.April, catalog.SeasonSummer},
		{time.May, catalog.SeasonSummer},
		{time.June, catalog.SeasonKharif},
		{time.July, catalog.SeasonKharif},
		{time.August, catalog.SeasonKharif},
		{time.September, catalog.SeasonKharif},
		{time.October, catalog.SeasonKharif},
		{time.November, catalog.SeasonRabi},
		{time.December, catalog.SeasonRabi},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			at := time.Date(2025, tt.month, 10, 9, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, agronomy.SeasonForTime(at))
		})
	}
}

func TestSeasonDescriptionAndAdvice(t *testing.T) {
	for _, season := range []catalog.Season{
		catalog.SeasonKharif, catalog.SeasonRabi, catalog.SeasonSummer,
	} {
		assert.NotEmpty(t, agronomy.SeasonDescription(season))
		assert.NotEmpty(t, agronomy.SeasonalAdvice(season))
	}
}
