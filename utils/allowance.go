package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/shopspring/decimal"
)

const (
	PayLevel1To5  = "Level 1-5"
	PayLevel6To11 = "Level 6-11"
	PayLevel12Up  = "Level 12+"

	CityClassX = "X"
	CityClassY = "Y"
	CityClassZ = "Z"
)

// Entry pay of Level 6 and Level 12 in the 7th CPC pay matrix.
const (
	level6EntryPay  = 35400
	level12EntryPay = 78800
)

var dailyAllowanceTable = map[string]map[string]int64{
	PayLevel12Up:  {CityClassX: 1000, CityClassY: 800, CityClassZ: 600},
	PayLevel6To11: {CityClassX: 700, CityClassY: 500, CityClassZ: 400},
	PayLevel1To5:  {CityClassX: 450, CityClassY: 350, CityClassZ: 250},
}

var cityClasses = map[string]string{
	"ahmedabad": CityClassX,
	"bengaluru": CityClassX,
	"bangalore": CityClassX,
	"chennai":   CityClassX,
	"delhi":     CityClassX,
	"new delhi": CityClassX,
	"hyderabad": CityClassX,
	"kolkata":   CityClassX,
	"mumbai":    CityClassX,
	"pune":      CityClassX,

	"surat":       CityClassY,
	"vadodara":    CityClassY,
	"baroda":      CityClassY,
	"rajkot":      CityClassY,
	"bhavnagar":   CityClassY,
	"jamnagar":    CityClassY,
	"gandhinagar": CityClassY,
	"jaipur":      CityClassY,
	"lucknow":     CityClassY,
	"nagpur":      CityClassY,
	"nashik":      CityClassY,
	"indore":      CityClassY,
	"bhopal":      CityClassY,
	"goa":         CityClassY,
}

// PayLevelForBasic buckets a basic pay figure into one of the allowance pay levels.
func PayLevelForBasic(basic float64) string {
	switch {
	case basic >= level12EntryPay:
		return PayLevel12Up
	case basic >= level6EntryPay:
		return PayLevel6To11
	default:
		return PayLevel1To5
	}
}

// PayLevelBucket buckets a pay-matrix level number.
func PayLevelBucket(level int) string {
	switch {
	case level >= 12:
		return PayLevel12Up
	case level >= 6:
		return PayLevel6To11
	default:
		return PayLevel1To5
	}
}

// EmployeePayLevel prefers the explicit pay level and falls back to basic pay.
func EmployeePayLevel(emp dto.Employee) string {
	if emp.PayLevel > 0 {
		return PayLevelBucket(emp.PayLevel.Int())
	}
	return PayLevelForBasic(emp.BasicPay.Float64())
}

// CityClass returns the X/Y/Z class of a city. Place strings such as
// "NAU, Navsari" or "Surat (Gujarat)" are matched on any of their words.
func CityClass(city string) string {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return CityClassZ
	}
	if class, ok := cityClasses[normalized]; ok {
		return class
	}

	for _, part := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ',' || r == '(' || r == ')' || r == '-' || r == '/'
	}) {
		if class, ok := cityClasses[strings.TrimSpace(part)]; ok {
			return class
		}
	}
	return CityClassZ
}

// DailyAllowance looks up the fixed daily allowance for a pay level and city class.
func DailyAllowance(level, cityClass string) (decimal.Decimal, error) {
	rates, ok := dailyAllowanceTable[level]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", dto.ErrUnknownPayLevel, level)
	}
	rate, ok := rates[strings.ToUpper(strings.TrimSpace(cityClass))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", dto.ErrUnknownCityClass, cityClass)
	}
	return decimal.NewFromInt(rate), nil
}

// DailyAllowanceForCity composes CityClass and DailyAllowance.
func DailyAllowanceForCity(level, city string) (decimal.Decimal, string, error) {
	class := CityClass(city)
	amount, err := DailyAllowance(level, class)
	return amount, class, err
}

// AllowanceRow is one row of the static rate table, for rendering.
type AllowanceRow struct {
	PayLevel string
	X, Y, Z  decimal.Decimal
}

// AllowanceTable returns the rate table ordered from the highest level down.
func AllowanceTable() []AllowanceRow {
	levels := make([]string, 0, len(dailyAllowanceTable))
	for level := range dailyAllowanceTable {
		levels = append(levels, level)
	}
	order := map[string]int{PayLevel12Up: 0, PayLevel6To11: 1, PayLevel1To5: 2}
	sort.Slice(levels, func(i, j int) bool { return order[levels[i]] < order[levels[j]] })

	rows := make([]AllowanceRow, 0, len(levels))
	for _, level := range levels {
		r := dailyAllowanceTable[level]
		rows = append(rows, AllowanceRow{
			PayLevel: level,
			X:        decimal.NewFromInt(r[CityClassX]),
			Y:        decimal.NewFromInt(r[CityClassY]),
			Z:        decimal.NewFromInt(r[CityClassZ]),
		})
	}
	return rows
}

// FormatINR renders an amount with Indian digit grouping, e.g. 1,23,456.00.
func FormatINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail + frac
}
