package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Custom errors
var (
	ErrUnreadableFile   = errors.New("file unreadable")
	ErrServiceCall      = errors.New("model/service call failed")
	ErrInvalidJSON      = errors.New("response not valid JSON")
	ErrUnclassified     = errors.New("document could not be classified")
	ErrNoTourData       = errors.New("no tour data found")
	ErrNoRoute          = errors.New("no route found")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrUnknownPayLevel  = errors.New("unknown pay level")
	ErrUnknownCityClass = errors.New("unknown city class")
	ErrNoFiles          = errors.New("no files provided")
)

// ExtractionError records which file failed and at what stage.
type ExtractionError struct {
	Filename string
	Stage    string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Filename, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ExtractResponse is the JSON preview of a run without rendering.
type ExtractResponse struct {
	Employee    Employee        `json:"employee"`
	Trips       []Trip          `json:"trips"`
	Allowances  []AllowanceLine `json:"allowances"`
	PayLevel    string          `json:"pay_level"`
	MonthLabel  string          `json:"month_label"`
	TotalKm     float64         `json:"total_km"`
	TotalDA     decimal.Decimal `json:"total_da"`
	Extractions []Extraction    `json:"extractions"`
	Skipped     []SkippedFile   `json:"skipped"`
	ProcessedAt string          `json:"processed_at"`
}

type AllowanceResponse struct {
	City      string          `json:"city,omitempty"`
	CityClass string          `json:"city_class"`
	PayLevel  string          `json:"pay_level"`
	Amount    decimal.Decimal `json:"amount"`
}

type DistanceResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Mode       string  `json:"mode"`
	DistanceKm float64 `json:"distance_km"`
	Duration   string  `json:"duration,omitempty"`
}

// HistoryRecord is one generated document, as stored by the history store.
type HistoryRecord struct {
	RequestID    string    `json:"request_id" bson:"request_id"`
	EmployeeName string    `json:"employee_name" bson:"employee_name"`
	Format       string    `json:"format" bson:"format"`
	TripCount    int       `json:"trip_count" bson:"trip_count"`
	TotalKm      float64   `json:"total_km" bson:"total_km"`
	TotalDA      string    `json:"total_da" bson:"total_da"`
	Skipped      int       `json:"skipped" bson:"skipped"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`
}
