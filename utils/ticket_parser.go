package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

var (
	pnrRegex         = regexp.MustCompile(`(?i)\bPNR\s*(?:NO\.?|NUMBER)?\s*[:\-]?\s*([0-9A-Z]{6,10})\b`)
	journeyDateRegex = regexp.MustCompile(`(?i)(?:DATE\s*OF\s*JOURNEY|JOURNEY\s*DATE|DEPARTURE(?:\s*DATE)?)\s*[:\-]?\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4}|\d{1,2}[\- ][A-Za-z]{3}[\- ]\d{4})`)
	ticketFromRegex  = regexp.MustCompile(`(?im)\b(?:FROM|BOARDING\s*(?:AT|STATION))\b\s*[:\-]?\s*([A-Za-z][A-Za-z .()]*?)(?:\s{2,}.*)?\s*$`)
	ticketToRegex    = regexp.MustCompile(`(?im)\b(?:TO|RESERVATION\s*UPTO|DESTINATION)\b\s*[:\-]?\s*([A-Za-z][A-Za-z .()]*?)(?:\s{2,}.*)?\s*$`)
	ticketClassRegex = regexp.MustCompile(`(?im)\bCLASS\s*[:\-]?\s*([A-Za-z0-9 ]+?)(?:\s{2,}.*)?\s*$`)
)

// Ordered by how specific the carrier markers are.
var ticketModes = []struct {
	mode    string
	markers []string
}{
	{"Air", []string{"BOARDING PASS", "FLIGHT", "AIRLINE", "AIRPORT"}},
	{"Train", []string{"IRCTC", "RAILWAY", "TRAIN NO", "ERS"}},
	{"Bus", []string{"GSRTC", "BUS", "ST DEPOT"}},
}

// ParseTicket reads a rail, bus or air ticket.
func ParseTicket(text string) dto.Extraction {
	text = strings.ReplaceAll(text, "\r", "")

	ticket := dto.Ticket{
		PNR:         strings.ToUpper(firstSubmatch(pnrRegex, text)),
		JourneyDate: NormalizeDate(strings.ReplaceAll(firstSubmatch(journeyDateRegex, text), " ", "-")),
		From:        firstSubmatch(ticketFromRegex, text),
		To:          firstSubmatch(ticketToRegex, text),
		Mode:        ticketMode(text),
		Class:       firstSubmatch(ticketClassRegex, text),
	}

	return dto.Extraction{
		Type:   dto.DocTypeTicket,
		Ticket: &ticket,
		Source: "regex",
	}
}

func ticketMode(text string) string {
	upper := strings.ToUpper(text)
	for _, m := range ticketModes {
		for _, marker := range m.markers {
			if containsWord(upper, marker) {
				return m.mode
			}
		}
	}
	return ""
}

// containsWord reports whether marker appears in s bounded by non-letters.
func containsWord(s, marker string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], marker)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(marker)
		if (start == 0 || !isLetter(s[start-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		i = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
