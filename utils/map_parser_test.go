package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

func TestParseMapScreenshot(t *testing.T) {
	text := "Google Maps\nFrom: Navsari Agricultural University\nTo: Surat Railway Station\n" +
		"3 hr 15 min (1,142 km)\nFastest route now due to traffic conditions\n98 km via NH48"

	ext := ParseMapScreenshot(text)

	assert.Equal(t, dto.DocTypeMapData, ext.Type)
	assert.Equal(t, 1142.0, ext.DistanceKm.Float64())
	assert.Equal(t, "3 hr 15 min", ext.TravelTime)
	assert.Equal(t, dto.FlexStrings{"Navsari Agricultural University", "Surat Railway Station"}, ext.Locations)
}

func TestParseMapScreenshotDecimalKm(t *testing.T) {
	ext := ParseMapScreenshot("42 min\n36.4 km")

	assert.Equal(t, 36.4, ext.DistanceKm.Float64())
	assert.Equal(t, "42 min", ext.TravelTime)
	assert.Empty(t, ext.Locations)
}

func TestParseMapScreenshotNoDistance(t *testing.T) {
	ext := ParseMapScreenshot("nothing here")

	assert.False(t, ext.DistanceKm > 0)
	assert.Empty(t, ext.TravelTime)
}
