package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

var (
	salaryNameRegex        = regexp.MustCompile(`(?im)\b(?:EMP(?:LOYEE)?\.?\s*NAME|NAME\s+OF\s+(?:THE\s+)?EMPLOYEE)\s*[:\-]?\s*([A-Za-z].*?)(?:\s{2,}.*)?\s*$`)
	salaryDesignationRegex = regexp.MustCompile(`(?im)\bDESIGNATION\s*[:\-]?\s*([A-Za-z].*?)(?:\s{2,}.*)?\s*$`)
	salaryLevelRegex       = regexp.MustCompile(`(?i)\b(?:PAY\s*)?LEVEL\s*[:\-]?\s*(?:NO\.?\s*)?([0-9]{1,2})\b`)
	budgetHeadRegex        = regexp.MustCompile(`(?i)(?:\bB\.\s*H\.?|\bBUDGET\s*HEAD)\s*[:\-]?\s*([0-9]+\s*/\s*[0-9A-Za-z]+)`)
	headquartersRegex      = regexp.MustCompile(`(?im)\b(?:HQ|HEAD\s*QUARTERS?)\s*[:\-]?\s*([A-Za-z].*?)(?:\s{2,}.*)?\s*$`)
	nameLabelRegex         = regexp.MustCompile(`(?im)^\s*NAME\s*:\s*([A-Za-z].*?)\s*$`)

	// OCR often collapses the column gap between two labelled fields to a
	// single space, so a capture runs into the next label.
	trailingLabelRegex = regexp.MustCompile(`(?i)\s+(?:(?:DESIGNATION|PAY\s*LEVEL|LEVEL|EMP(?:LOYEE)?\.?\s*(?:CODE|NO|ID|NAME)|B\.\s*H|BUDGET\s*HEAD|HQ|HEAD\s*QUARTERS?|BASIC|MODE|PURPOSE|DEPARTURE|ARRIVAL|DISTANCE|DATE|TIME|PAN|BANK)\b|TO\s*:)`)

	personNameChars  = regexp.MustCompile(`^[A-Za-z][A-Za-z .]*`)
	designationChars = regexp.MustCompile(`^[A-Za-z][A-Za-z .,&()/-]*`)
	placeChars       = regexp.MustCompile(`^[A-Za-z][A-Za-z .,]*`)
)

// Ordered: the first pattern that yields a number wins.
var basicPayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bBASIC(?:\s*PAY)?\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)\bPAY\s*IN\s*(?:THE\s*)?(?:PAY\s*)?MATRIX\s*[:\-]?\s*(?:Rs\.?|INR|₹)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
}

// ParseSalarySlip extracts the employee record from salary slip text.
// Every field is independently optional; a miss leaves the zero value.
func ParseSalarySlip(text string) dto.Employee {
	text = strings.ReplaceAll(text, "\r", "")

	return dto.Employee{
		Name:         extractEmployeeName(text),
		Designation:  labelledField(salaryDesignationRegex, designationChars, text),
		BasicPay:     dto.FlexFloat(extractBasicPay(text)),
		PayLevel:     dto.FlexInt(extractPayLevel(text)),
		BudgetHead:   extractBudgetHead(text),
		Headquarters: labelledField(headquartersRegex, placeChars, text),
	}
}

func extractEmployeeName(text string) string {
	if name := labelledField(salaryNameRegex, personNameChars, text); name != "" {
		return name
	}
	return labelledField(nameLabelRegex, personNameChars, text)
}

func extractBasicPay(text string) float64 {
	for _, re := range basicPayPatterns {
		if matches := re.FindStringSubmatch(text); len(matches) > 1 {
			amountStr := strings.ReplaceAll(matches[1], ",", "")
			if amount, err := strconv.ParseFloat(amountStr, 64); err == nil {
				return amount
			}
		}
	}
	return 0.0
}

func extractPayLevel(text string) int {
	m := firstSubmatch(salaryLevelRegex, text)
	if m == "" {
		return 0
	}
	level, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return level
}

func extractBudgetHead(text string) string {
	bh := firstSubmatch(budgetHeadRegex, text)
	return strings.Join(strings.Fields(bh), "")
}

func firstSubmatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// labelledField returns the first submatch of re cut at the next field label
// and trimmed to the leading run accepted by chars.
func labelledField(re, chars *regexp.Regexp, text string) string {
	return strings.TrimSpace(chars.FindString(cutAtLabel(firstSubmatch(re, text))))
}

func cutAtLabel(s string) string {
	if loc := trailingLabelRegex.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimRight(strings.TrimSpace(s), " ,:-")
}
