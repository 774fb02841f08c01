package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	datePattern = `\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4}`
	timePattern = `\d{1,2}[:.]\d{2}`
)

var (
	systemNoRegex     = regexp.MustCompile(`(?i)(?:SYSTEM\s*NO\.?|TOUR\s*ID|TOUR\s*NO\.?)\s*[:\-]?\s*([0-9]{8,20})`)
	longDigitRunRegex = regexp.MustCompile(`\b[0-9]{12,20}\b`)

	// departure date/time/place, arrival date/time/place, optional mode after a wide gap
	tripRowRegex = regexp.MustCompile(`(?m)(` + datePattern + `)\s+(` + timePattern + `)\s+(.+?)\s+(` + datePattern + `)\s+(` + timePattern + `)\s+(.+?)(?:\s{2,}(.+?))?\s*$`)

	tourNameRegex    = regexp.MustCompile(`(?im)\b(?:NAME\s+OF\s+(?:THE\s+)?(?:EMPLOYEE|OFFICER)|EMPLOYEE\s*NAME|APPLICANT\s*NAME)\s*[:\-]\s*([A-Za-z].*?)(?:\s{2,}.*)?\s*$`)
	fromRegex        = regexp.MustCompile(`(?im)^\s*(?:FROM|DEPARTURE\s*PLACE|PLACE\s*OF\s*DEPARTURE)\s*[:\-]\s*(.+?)(?:\s{2,}.*)?\s*$`)
	toRegex          = regexp.MustCompile(`(?im)^\s*(?:TO|ARRIVAL\s*PLACE|DESTINATION|PLACE\s*OF\s*VISIT)\s*[:\-]\s*(.+?)(?:\s{2,}.*)?\s*$`)
	depDateRegex     = regexp.MustCompile(`(?i)DEPARTURE\s*DATE\s*[:\-]?\s*(` + datePattern + `)`)
	depTimeRegex     = regexp.MustCompile(`(?i)DEPARTURE\s*TIME\s*[:\-]?\s*(` + timePattern + `)`)
	arrDateRegex     = regexp.MustCompile(`(?i)ARRIVAL\s*DATE\s*[:\-]?\s*(` + datePattern + `)`)
	arrTimeRegex     = regexp.MustCompile(`(?i)ARRIVAL\s*TIME\s*[:\-]?\s*(` + timePattern + `)`)
	modeRegex        = regexp.MustCompile(`(?im)\bMODE(?:\s+OF\s+(?:JOURNEY|TRAVEL|CONVEYANCE))?\s*[:\-]\s*(.+?)(?:\s{2,}.*)?\s*$`)
	purposeRegex     = regexp.MustCompile(`(?im)\bPURPOSE(?:\s+OF\s+(?:THE\s+)?(?:TOUR|JOURNEY|VISIT))?\s*[:\-]\s*(.+?)\s*$`)
	kmLabelRegex     = regexp.MustCompile(`(?i)\b(?:DISTANCE|KMS?)\s*[:\-]\s*([0-9]+(?:\.[0-9]+)?)`)

	// a travel mode left on the arrival place when the column gap is lost
	modeSuffixRegex = regexp.MustCompile(`(?i)\s+((?:(?:PRIVATE|OWN|GOVT\.?|GOVERNMENT|UNIVERSITY)\s+)?(?:VEHICLE|CAR|JEEP|TAXI)|BUS|TRAIN|RAIL(?:WAY)?|AIR|FLIGHT)$`)
)

// ParseTourApproval scrapes an OTMS tour approval. Tabular journey rows are
// preferred; a single labelled journey block is the fallback.
func ParseTourApproval(text string) dto.Extraction {
	text = strings.ReplaceAll(text, "\r", "")

	result := dto.Extraction{
		Type:     dto.DocTypeTourApproval,
		SystemNo: extractSystemNo(text),
		Source:   "regex",
	}

	details := dto.UserDetails{
		Name:        labelledField(tourNameRegex, personNameChars, text),
		Designation: labelledField(salaryDesignationRegex, designationChars, text),
		BudgetHead:  extractBudgetHead(text),
	}
	if details != (dto.UserDetails{}) {
		result.UserDetails = &details
	}

	purpose := firstSubmatch(purposeRegex, text)
	mode := cutAtLabel(firstSubmatch(modeRegex, text))

	trips := extractTripRows(text)
	if len(trips) == 0 {
		if t, ok := extractLabelledTrip(text); ok {
			trips = append(trips, t)
		}
	}

	for i := range trips {
		if trips[i].Purpose == "" {
			trips[i].Purpose = purpose
		}
		if trips[i].Mode == "" {
			trips[i].Mode = mode
		}
	}
	result.Trips = trips

	return result
}

func extractSystemNo(text string) string {
	if no := firstSubmatch(systemNoRegex, text); no != "" {
		return no
	}

	longest := ""
	for _, m := range longDigitRunRegex.FindAllString(text, -1) {
		if len(m) > len(longest) {
			longest = m
		}
	}
	return longest
}

func extractTripRows(text string) dto.TripList {
	var trips dto.TripList
	for _, m := range tripRowRegex.FindAllStringSubmatch(text, -1) {
		arrival, mode := strings.TrimSpace(m[6]), strings.TrimSpace(m[7])
		if mode == "" {
			if loc := modeSuffixRegex.FindStringSubmatchIndex(arrival); loc != nil {
				mode = arrival[loc[2]:loc[3]]
				arrival = strings.TrimSpace(arrival[:loc[0]])
			}
		}
		trips = append(trips, dto.Trip{
			DepartureDate:  NormalizeDate(m[1]),
			DepartureTime:  normalizeTime(m[2]),
			DeparturePlace: strings.TrimSpace(m[3]),
			ArrivalDate:    NormalizeDate(m[4]),
			ArrivalTime:    normalizeTime(m[5]),
			ArrivalPlace:   arrival,
			Mode:           mode,
		})
	}
	return trips
}

func extractLabelledTrip(text string) (dto.Trip, bool) {
	t := dto.Trip{
		DeparturePlace: cutAtLabel(firstSubmatch(fromRegex, text)),
		DepartureDate:  NormalizeDate(firstSubmatch(depDateRegex, text)),
		DepartureTime:  normalizeTime(firstSubmatch(depTimeRegex, text)),
		ArrivalPlace:   cutAtLabel(firstSubmatch(toRegex, text)),
		ArrivalDate:    NormalizeDate(firstSubmatch(arrDateRegex, text)),
		ArrivalTime:    normalizeTime(firstSubmatch(arrTimeRegex, text)),
		DistanceKm:     dto.FlexFloat(dto.ParseLooseFloat(firstSubmatch(kmLabelRegex, text))),
	}

	if t.DeparturePlace == "" && t.ArrivalPlace == "" && t.DepartureDate == "" {
		return dto.Trip{}, false
	}
	return t, true
}

func normalizeTime(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", ":"))
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}
