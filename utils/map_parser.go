package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

var (
	mapDistanceRegex   = regexp.MustCompile(`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:km|kms|kilomet(?:er|re)s?)\b`)
	mapTravelTimeRegex = regexp.MustCompile(`(?i)\b(\d+\s*(?:hr|hrs|hours?|h)(?:\s*\d+\s*(?:min|mins|minutes?))?|\d+\s*(?:min|mins|minutes?))\b`)
	mapFromRegex       = regexp.MustCompile(`(?im)^\s*(?:FROM|START|ORIGIN|YOUR\s+LOCATION)\s*[:\-]?\s*(.+?)\s*$`)
	mapToRegex         = regexp.MustCompile(`(?im)^\s*(?:TO|END|DESTINATION)\s*[:\-]\s*(.+?)\s*$`)
)

// ParseMapScreenshot reads the route summary of a maps screenshot.
// The first distance on the page is the selected route in every layout seen so far.
func ParseMapScreenshot(text string) dto.Extraction {
	text = strings.ReplaceAll(text, "\r", "")

	result := dto.Extraction{
		Type:   dto.DocTypeMapData,
		Source: "regex",
	}

	if m := mapDistanceRegex.FindStringSubmatch(text); len(m) > 1 {
		result.DistanceKm = dto.FlexFloat(dto.ParseLooseFloat(m[1]))
	}
	if m := mapTravelTimeRegex.FindStringSubmatch(text); len(m) > 1 {
		result.TravelTime = strings.Join(strings.Fields(m[1]), " ")
	}

	if from := firstSubmatch(mapFromRegex, text); from != "" {
		result.Locations = append(result.Locations, from)
	}
	if to := firstSubmatch(mapToRegex, text); to != "" {
		result.Locations = append(result.Locations, to)
	}

	return result
}
