package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timelogger/internal/domain"
	"timelogger/internal/repository"
	"timelogger/internal/validation"
)

// DayValidator checks a day before a ledger is opened on it
type DayValidator interface {
	ValidateDayKey(key string) error
	ValidateDay(day, now time.Time) error
}

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	clockLayout  string
	dayValidator DayValidator
}

// NewTimeService creates a new TimeService instance
func NewTimeService(clockLayout string, dayValidator DayValidator) TimeService {
	if clockLayout == "" {
		clockLayout = domain.ClockLayout
	}
	if dayValidator == nil {
		dayValidator = validation.NewDayValidator()
	}
	return &timeServiceImpl{
		clockLayout:  clockLayout,
		dayValidator: dayValidator,
	}
}

// ParseDay converts a --date value to the midnight of that day
func (t *timeServiceImpl) ParseDay(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := repository.StartOfDay(now)

	var day time.Time
	switch {
	case input == "" || input == "today":
		day = today
	case input == "yesterday":
		day = today.AddDate(0, 0, -1)
	case strings.HasPrefix(input, "+") || strings.HasPrefix(input, "-"):
		offset, err := strconv.Atoi(input)
		if err != nil {
			validationError := validation.NewValidationError()
			validationError.AddInvalidFormatError("date", input, "a signed day offset like -1 or +2")
			return time.Time{}, validationError
		}
		day = today.AddDate(0, 0, offset)
	default:
		if err := t.dayValidator.ValidateDayKey(input); err != nil {
			return time.Time{}, err
		}
		day, _ = repository.ParseDayKey(input)
	}

	if err := t.dayValidator.ValidateDay(day, now); err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// IsToday checks if day is the calendar day of now
func (t *timeServiceImpl) IsToday(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatHours formats decimal hours the way the summary prints them
func (t *timeServiceImpl) FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}

// FormatDuration formats a duration into human-readable string
func (t *timeServiceImpl) FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "0m"
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock renders an instant with the configured clock layout; the
// zero time is a running end and renders as "now"
func (t *timeServiceImpl) FormatClock(at time.Time) string {
	if at.IsZero() {
		return domain.NowToken
	}
	return at.Format(t.clockLayout)
}
