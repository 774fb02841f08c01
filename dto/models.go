package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DocumentType string

const (
	DocTypeTourApproval DocumentType = "tour_approval"
	DocTypeSalarySlip   DocumentType = "salary"
	DocTypeMapData      DocumentType = "map_data"
	DocTypeTicket       DocumentType = "ticket"
)

// Document is one uploaded file held in memory for the duration of a run.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
	Password string
}

// Employee is built once per run from the salary slip and tour approval details.
type Employee struct {
	Name         string    `json:"name,omitempty"`
	Designation  string    `json:"designation,omitempty"`
	BasicPay     FlexFloat `json:"basic_pay,omitempty"`
	PayLevel     FlexInt   `json:"pay_level,omitempty"`
	BudgetHead   string    `json:"budget_head,omitempty"`
	Headquarters string    `json:"headquarters,omitempty"`
}

// Trip is one journey of a tour. DistanceKm of zero means the distance is unknown.
type Trip struct {
	DeparturePlace string    `json:"departure_place,omitempty"`
	DepartureDate  string    `json:"departure_date,omitempty"`
	DepartureTime  string    `json:"departure_time,omitempty"`
	ArrivalPlace   string    `json:"arrival_place,omitempty"`
	ArrivalDate    string    `json:"arrival_date,omitempty"`
	ArrivalTime    string    `json:"arrival_time,omitempty"`
	Mode           string    `json:"mode_of_journey,omitempty"`
	DistanceKm     FlexFloat `json:"distance_km,omitempty"`
	Purpose        string    `json:"purpose,omitempty"`
	SystemNo       string    `json:"system_no,omitempty"`
}

// HasDistance reports whether the trip carries a usable distance.
func (t Trip) HasDistance() bool {
	return t.DistanceKm > 0
}

type UserDetails struct {
	Name        string `json:"name,omitempty"`
	Designation string `json:"designation,omitempty"`
	BudgetHead  string `json:"budget_head,omitempty"`
}

type Ticket struct {
	PNR         string `json:"pnr,omitempty"`
	JourneyDate string `json:"journey_date,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Class       string `json:"class,omitempty"`
}

// Extraction is the per-file result of an Extractor. Any subset of fields may be set.
type Extraction struct {
	Type        DocumentType `json:"type"`
	SystemNo    string       `json:"system_no,omitempty"`
	UserDetails *UserDetails `json:"user_details,omitempty"`
	Trips       TripList     `json:"trips,omitempty"`
	DistanceKm  FlexFloat    `json:"distance_km,omitempty"`
	TravelTime  string       `json:"travel_time,omitempty"`
	Locations   FlexStrings  `json:"locations,omitempty"`
	BasicPay    FlexFloat    `json:"basic_pay,omitempty"`
	Employee    *Employee    `json:"employee,omitempty"`
	Ticket      *Ticket      `json:"ticket,omitempty"`
	Source      string       `json:"source,omitempty"`
	Filename    string       `json:"filename,omitempty"`
}

// Letterhead carries the fixed texts and fallbacks baked into the rendered diary.
type Letterhead struct {
	EmployeeName   string `json:"employee_name"`
	Designation    string `json:"designation"`
	BudgetHead     string `json:"budget_head"`
	DepartmentLine string `json:"department_line"`
	Department     string `json:"department"`
	College        string `json:"college"`
	University     string `json:"university"`
	DeparturePlace string `json:"departure_place"`
	Mode           string `json:"mode"`
	ApprovedBy     string `json:"approved_by"`
	SystemNo       string `json:"system_no"`
}

// AllowanceLine is the daily allowance applied to one trip.
type AllowanceLine struct {
	TripIndex int             `json:"trip_index"`
	City      string          `json:"city"`
	CityClass string          `json:"city_class"`
	PayLevel  string          `json:"pay_level"`
	Rate      decimal.Decimal `json:"rate"`
	Days      int             `json:"days"`
	Amount    decimal.Decimal `json:"amount"`
}

type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Diary is the fully merged input of a renderer.
type Diary struct {
	Employee   Employee        `json:"employee"`
	Trips      []Trip          `json:"trips"`
	Allowances []AllowanceLine `json:"allowances"`
	PayLevel   string          `json:"pay_level"`
	MonthLabel string          `json:"month_label"`
	TotalKm    float64         `json:"total_km"`
	TotalDA    decimal.Decimal `json:"total_da"`
	Letterhead Letterhead      `json:"letterhead"`
	Skipped    []SkippedFile   `json:"skipped,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AllowanceFor returns the allowance line of trip i, if one was computed.
func (d *Diary) AllowanceFor(i int) (AllowanceLine, bool) {
	for _, a := range d.Allowances {
		if a.TripIndex == i {
			return a, true
		}
	}
	return AllowanceLine{}, false
}

// MergeResult groups extractions by their coarse type tag.
type MergeResult struct {
	Employee Employee     `json:"employee"`
	Trips    []Trip       `json:"trips"`
	Maps     []Extraction `json:"maps,omitempty"`
	Tickets  []Ticket     `json:"tickets,omitempty"`
}
