package services

import (
	"time"

	"timelogger/internal/domain"
	"timelogger/internal/ledger"
)

// TaskPercentage is one paid task's rounded share of working time
type TaskPercentage struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// Percentages holds the rounded shares of all paid tasks. Correction is what
// was added to the last share so the shares sum to exactly 100.
type Percentages struct {
	Tasks      []TaskPercentage `json:"tasks"`
	Correction int              `json:"correction"`
}

// DayReport is everything the summary view prints for one day
type DayReport struct {
	Summary     ledger.Summary
	Percentages Percentages
	// ShowWorkingTime is set when unpaid time makes working time differ
	// from logged time.
	ShowWorkingTime bool
}

// ExportRow is one interval of the day, flattened for CSV and JSON export
type ExportRow struct {
	Day         string  `json:"day"`
	Task        string  `json:"task"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Hours       float64 `json:"hours"`
	Unpaid      bool    `json:"unpaid"`
}

// TimeService handles day selection and time formatting
type TimeService interface {
	// ParseDay resolves "today", "yesterday", "+N"/"-N" or YYYY-MM-DD to a
	// local midnight relative to now.
	ParseDay(input string, now time.Time) (time.Time, error)
	IsToday(day, now time.Time) bool

	FormatHours(hours float64) string
	FormatDuration(duration time.Duration) string
	FormatClock(t time.Time) string
}

// ReportingService turns ledger summaries into reports and exports
type ReportingService interface {
	Percentages(summary ledger.Summary) Percentages
	BuildReport(summary ledger.Summary) *DayReport
	ExportRows(day time.Time, tasks []*domain.Task, isUnpaid func(string) bool, now time.Time) []ExportRow
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	ReportingService ReportingService
}

// NewServiceContainer wires the services with the given clock layout
func NewServiceContainer(clockLayout string, dayValidator DayValidator) *ServiceContainer {
	timeService := NewTimeService(clockLayout, dayValidator)
	return &ServiceContainer{
		TimeService:      timeService,
		ReportingService: NewReportingService(timeService),
	}
}
