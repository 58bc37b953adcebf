package services

import (
	"math"
	"time"

	"timelogger/internal/domain"
	"timelogger/internal/ledger"
	"timelogger/internal/repository"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeService TimeService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeService TimeService) ReportingService {
	return &reportingServiceImpl{
		timeService: timeService,
	}
}

// Percentages rounds each paid task's share of paid time to a whole
// percent, half to even, and puts the rounding error on the last task.
func (r *reportingServiceImpl) Percentages(summary ledger.Summary) Percentages {
	result := Percentages{Tasks: []TaskPercentage{}}

	var paid []ledger.Row
	for _, row := range summary.Rows {
		if !row.Unpaid {
			paid = append(paid, row)
		}
	}
	if len(paid) == 0 || summary.TotalHoursPaid <= 0 {
		for _, row := range paid {
			result.Tasks = append(result.Tasks, TaskPercentage{Name: row.Name})
		}
		return result
	}

	sum := 0
	for _, row := range paid {
		percent := int(math.RoundToEven(row.TotalHours * 100 / summary.TotalHoursPaid))
		result.Tasks = append(result.Tasks, TaskPercentage{Name: row.Name, Percent: percent})
		sum += percent
	}
	result.Correction = 100 - sum
	result.Tasks[len(result.Tasks)-1].Percent += result.Correction
	return result
}

// BuildReport gathers the summary view of one day
func (r *reportingServiceImpl) BuildReport(summary ledger.Summary) *DayReport {
	return &DayReport{
		Summary:         summary,
		Percentages:     r.Percentages(summary),
		ShowWorkingTime: summary.TotalHoursAll != summary.TotalHoursPaid,
	}
}

// ExportRows flattens tasks into one row per interval, in task order
func (r *reportingServiceImpl) ExportRows(day time.Time, tasks []*domain.Task, isUnpaid func(string) bool, now time.Time) []ExportRow {
	rows := make([]ExportRow, 0)
	for _, task := range tasks {
		for _, iv := range task.Intervals {
			rows = append(rows, ExportRow{
				Day:         repository.DayKey(day),
				Task:        task.Name,
				Description: task.Description,
				Start:       r.timeService.FormatClock(iv.Start),
				End:         r.timeService.FormatClock(iv.End),
				Hours:       math.Round(iv.Hours(now)*100) / 100,
				Unpaid:      isUnpaid != nil && isUnpaid(task.Name),
			})
		}
	}
	return rows
}
