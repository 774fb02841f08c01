package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

const diaryTitle = "TOUR DIARY"

var (
	groupHeaders = []string{"Departure", "Arrival"}
	subHeaders   = []string{"Place", "Date", "Time", "Place", "Date", "Time", "Mode", "KM", "Purpose"}
)

// tripRow is one rendered table row; fallbacks are already applied.
type tripRow struct {
	Cells [9]string
	DA    string
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func employeeName(d *dto.Diary) string {
	return safe(d.Employee.Name, d.Letterhead.EmployeeName)
}

func employeeDesignation(d *dto.Diary) string {
	return safe(d.Employee.Designation, d.Letterhead.Designation)
}

func basicSalary(d *dto.Diary) string {
	if d.Employee.BasicPay <= 0 {
		return "N/A"
	}
	return utils.FormatINR(decimal.NewFromFloat(d.Employee.BasicPay.Float64()))
}

// headerLines is the block under the title. The month line is omitted when unknown.
func headerLines(d *dto.Diary) []string {
	lines := []string{
		"Designation: " + employeeDesignation(d),
		"Name: " + employeeName(d),
		"Basic salary: " + basicSalary(d),
		"B.H: " + safe(d.Employee.BudgetHead, d.Letterhead.BudgetHead),
		d.Letterhead.DepartmentLine,
	}
	if d.MonthLabel != "" {
		lines = append(lines, d.MonthLabel)
	}
	return lines
}

func purposeText(lh dto.Letterhead, trip dto.Trip) string {
	return fmt.Sprintf("Tour is final Approved by the %s.\n%s\nin Online Tour management System No.\n%s",
		lh.ApprovedBy, trip.Purpose, safe(trip.SystemNo, lh.SystemNo))
}

func tripRows(d *dto.Diary) []tripRow {
	rows := make([]tripRow, 0, len(d.Trips))
	for i, t := range d.Trips {
		row := tripRow{Cells: [9]string{
			safe(t.DeparturePlace, d.Letterhead.DeparturePlace),
			t.DepartureDate,
			t.DepartureTime,
			t.ArrivalPlace,
			t.ArrivalDate,
			t.ArrivalTime,
			safe(t.Mode, d.Letterhead.Mode),
			t.DistanceKm.String(),
			purposeText(d.Letterhead, t),
		}}
		if a, ok := d.AllowanceFor(i); ok {
			row.DA = utils.FormatINR(a.Amount)
		}
		rows = append(rows, row)
	}
	return rows
}

func totalsLine(d *dto.Diary) string {
	return fmt.Sprintf("Total distance: %s km    Total DA: Rs. %s (%s)",
		decimal.NewFromFloat(d.TotalKm).StringFixed(1), utils.FormatINR(d.TotalDA), safe(d.PayLevel, "-"))
}

func signatureLines(d *dto.Diary) []string {
	lh := d.Letterhead
	return []string{
		"(" + employeeName(d) + ")",
		employeeDesignation(d),
		lh.Department,
		lh.College,
		lh.University,
	}
}

func recommendedLines(lh dto.Letterhead) []string {
	return []string{"Recommended", "", "", "Professor and Head", lh.Department, lh.College, lh.University}
}

func approvedLines(lh dto.Letterhead) []string {
	return []string{"Approved", "", "", "Principal and Dean", lh.College, lh.University}
}
