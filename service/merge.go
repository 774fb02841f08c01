package service

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

const unknownSystemNo = "Unknown"

// Merge groups per-file extractions by type. Salary slips are applied before
// tour approvals so that non-empty tour user details always win.
func Merge(extractions []*dto.Extraction) dto.MergeResult {
	var result dto.MergeResult

	for _, ext := range extractions {
		if ext == nil || ext.Type != dto.DocTypeSalarySlip {
			continue
		}
		applySalary(&result.Employee, ext)
	}

	for _, ext := range extractions {
		if ext == nil {
			continue
		}

		switch ext.Type {
		case dto.DocTypeTourApproval:
			if ext.UserDetails != nil {
				if salaryName := result.Employee.Name; salaryName != "" && ext.UserDetails.Name != "" && !utils.CompareNames(salaryName, ext.UserDetails.Name) {
					log.Printf("Warning: salary slip name %q does not match tour approval name %q in %s", salaryName, ext.UserDetails.Name, ext.Filename)
				}
				overrideIfSet(&result.Employee.Name, ext.UserDetails.Name)
				overrideIfSet(&result.Employee.Designation, ext.UserDetails.Designation)
				overrideIfSet(&result.Employee.BudgetHead, ext.UserDetails.BudgetHead)
			}

			systemNo := strings.TrimSpace(ext.SystemNo)
			if systemNo == "" {
				systemNo = unknownSystemNo
			}
			for _, trip := range ext.Trips {
				trip.SystemNo = systemNo
				result.Trips = append(result.Trips, trip)
			}

		case dto.DocTypeMapData:
			result.Maps = append(result.Maps, *ext)

		case dto.DocTypeTicket:
			if ext.Ticket != nil {
				result.Tickets = append(result.Tickets, *ext.Ticket)
			}
		}
	}

	return result
}

func applySalary(emp *dto.Employee, ext *dto.Extraction) {
	if ext.Employee != nil {
		overrideIfSet(&emp.Name, ext.Employee.Name)
		overrideIfSet(&emp.Designation, ext.Employee.Designation)
		overrideIfSet(&emp.BudgetHead, ext.Employee.BudgetHead)
		overrideIfSet(&emp.Headquarters, ext.Employee.Headquarters)
		if ext.Employee.PayLevel > 0 {
			emp.PayLevel = ext.Employee.PayLevel
		}
		if ext.Employee.BasicPay > 0 {
			emp.BasicPay = ext.Employee.BasicPay
		}
	}
	if ext.BasicPay > 0 {
		emp.BasicPay = ext.BasicPay
	}
}

func overrideIfSet(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// BackfillDistances gives every trip without a distance the distance of the
// first map record that has one. The record is reused for all trips, not
// consumed. It returns the number of trips filled.
func BackfillDistances(trips []dto.Trip, maps []dto.Extraction) int {
	var km dto.FlexFloat
	for _, m := range maps {
		if m.DistanceKm > 0 {
			km = m.DistanceKm
			break
		}
	}
	if km <= 0 {
		return 0
	}

	filled := 0
	for i := range trips {
		if !trips[i].HasDistance() {
			trips[i].DistanceKm = km
			filled++
		}
	}
	return filled
}

// ApplyTickets sets the mode of trips that have none from a ticket for the same date.
func ApplyTickets(trips []dto.Trip, tickets []dto.Ticket) {
	for i := range trips {
		if strings.TrimSpace(trips[i].Mode) != "" {
			continue
		}
		date := utils.NormalizeDate(trips[i].DepartureDate)
		for _, t := range tickets {
			if t.Mode != "" && date != "" && utils.NormalizeDate(t.JourneyDate) == date {
				trips[i].Mode = t.Mode
				break
			}
		}
	}
}

// SortTrips orders trips by departure date, oldest first, keeping the relative
// order of equal dates. Missing dates sort first. If any date cannot be parsed
// the trips are left as they are.
func SortTrips(trips []dto.Trip) {
	keys := make([]time.Time, len(trips))
	for i, t := range trips {
		if strings.TrimSpace(t.DepartureDate) == "" {
			continue
		}
		d, err := utils.ParseDate(t.DepartureDate)
		if err != nil {
			return
		}
		keys[i] = d
	}

	idx := make([]int, len(trips))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]].Before(keys[idx[b]]) })

	sorted := make([]dto.Trip, len(trips))
	for i, j := range idx {
		sorted[i] = trips[j]
	}
	copy(trips, sorted)
}
