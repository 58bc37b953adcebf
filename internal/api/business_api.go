// Package api is the boundary the CLI talks to: it opens days of the
// ledger on a store and turns them into reports and exports.
package api

import (
	"context"
	"time"

	"timelogger/internal/config"
	"timelogger/internal/errors"
	"timelogger/internal/ledger"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
	"timelogger/internal/services"
	"timelogger/internal/validation"
)

// BusinessAPI defines the day-level workflows of the time logger
type BusinessAPI interface {
	// ========== Day Selection ==========

	// ParseDay resolves a --date value ("", today, yesterday, -1, YYYY-MM-DD)
	// to the midnight of that day
	ParseDay(input string) (time.Time, error)

	// OpenDay loads the ledger of the day input selects
	OpenDay(ctx context.Context, input string) (*ledger.Ledger, error)

	// ========== Reporting ==========

	// DayReport measures the ledger now and builds the summary view
	DayReport(l *ledger.Ledger) *services.DayReport

	// ExportDay flattens the ledger into one row per interval
	ExportDay(l *ledger.Ledger) []services.ExportRow

	// TimeService formats hours and clock times for presentation
	TimeService() services.TimeService
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	store         repository.Store
	config        *config.Config
	clock         ledger.Clock
	services      *services.ServiceContainer
	taskValidator *validation.TaskValidator
}

// NewBusinessAPI creates a new BusinessAPI instance. A nil clock uses time.Now.
func NewBusinessAPI(store repository.Store, cfg *config.Config, clock ledger.Clock) BusinessAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clock == nil {
		clock = time.Now
	}
	return &businessAPIImpl{
		store:         store,
		config:        cfg,
		clock:         clock,
		services:      services.NewServiceContainer(cfg.Time.ClockFormat, validation.NewDayValidatorWithConfig(cfg)),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
	}
}

func (b *businessAPIImpl) ParseDay(input string) (time.Time, error) {
	return b.services.TimeService.ParseDay(input, b.clock())
}

func (b *businessAPIImpl) OpenDay(ctx context.Context, input string) (*ledger.Ledger, error) {
	if b.store == nil {
		return nil, errors.NewInvalidInputError("store", "", "no store is open")
	}
	day, err := b.ParseDay(input)
	if err != nil {
		return nil, err
	}
	logging.Debugf("api: opening %s\n", repository.DayKey(day))

	return ledger.Open(ctx, b.store, day,
		ledger.WithClock(b.clock),
		ledger.WithValidator(b.taskValidator),
		ledger.WithMaxHistory(b.config.Ledger.MaxHistory),
		ledger.WithHiddenPrefix(b.config.Ledger.HiddenPrefix),
	)
}

func (b *businessAPIImpl) DayReport(l *ledger.Ledger) *services.DayReport {
	return b.services.ReportingService.BuildReport(l.Summary())
}

func (b *businessAPIImpl) ExportDay(l *ledger.Ledger) []services.ExportRow {
	return b.services.ReportingService.ExportRows(l.Day(), l.Tasks(), l.IsUnpaid, l.Now())
}

func (b *businessAPIImpl) TimeService() services.TimeService {
	return b.services.TimeService
}
