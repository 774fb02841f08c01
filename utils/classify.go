package utils

import (
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// ClassifyText guesses the document type from its extracted text.
// Checks run from the most to the least distinctive document.
func ClassifyText(text string) (dto.DocumentType, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "online tour management"),
		strings.Contains(lower, "tour approval"),
		strings.Contains(lower, "tour") && systemNoRegex.MatchString(text),
		tripRowRegex.MatchString(text):
		return dto.DocTypeTourApproval, true

	case strings.Contains(lower, "pnr"),
		strings.Contains(lower, "boarding pass"),
		strings.Contains(lower, "irctc"):
		return dto.DocTypeTicket, true

	case strings.Contains(lower, "salary"),
		strings.Contains(lower, "pay slip"),
		strings.Contains(lower, "payslip"),
		strings.Contains(lower, "basic") && (strings.Contains(lower, "gross") || strings.Contains(lower, "net pay") || strings.Contains(lower, "deduction")):
		return dto.DocTypeSalarySlip, true

	case mapDistanceRegex.MatchString(text):
		return dto.DocTypeMapData, true
	}

	return "", false
}

// ParseByType runs the text parser that matches docType.
func ParseByType(docType dto.DocumentType, text string) dto.Extraction {
	switch docType {
	case dto.DocTypeTourApproval:
		return ParseTourApproval(text)
	case dto.DocTypeTicket:
		return ParseTicket(text)
	case dto.DocTypeMapData:
		return ParseMapScreenshot(text)
	default:
		emp := ParseSalarySlip(text)
		return dto.Extraction{
			Type:     dto.DocTypeSalarySlip,
			BasicPay: emp.BasicPay,
			Employee: &emp,
			Source:   "regex",
		}
	}
}
