package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const DiaryDateLayout = "02/01/2006"

var dateLayouts = []string{"2/1/2006", "2-1-2006", "2.1.2006", "2006-01-02", "2 Jan 2006", "2-Jan-2006", "2 January 2006"}

// ParseDate parses the DD/MM/YYYY dates used across tour documents,
// tolerating the separators OCR tends to introduce.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %q", s)
}

// NormalizeDate rewrites a parseable date as DD/MM/YYYY and leaves anything else untouched.
func NormalizeDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format(DiaryDateLayout)
}

// MonthLabel builds the "Month: ..." header line from the trips' departure dates.
// It returns "" when there are no dates or any of them fails to parse.
func MonthLabel(trips []dto.Trip) string {
	var dates []time.Time
	for _, t := range trips {
		if strings.TrimSpace(t.DepartureDate) == "" {
			continue
		}
		d, err := ParseDate(t.DepartureDate)
		if err != nil {
			return ""
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return ""
	}

	minDate, maxDate := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	if minDate.Month() == maxDate.Month() && minDate.Year() == maxDate.Year() {
		return "Month: " + minDate.Format("January-2006")
	}
	return fmt.Sprintf("Month: %s to %s", minDate.Format("January-2006"), maxDate.Format("January-2006"))
}
