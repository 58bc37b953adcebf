package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"timelogger/internal/api"
	"timelogger/internal/config"
	"timelogger/internal/ledger"
	"timelogger/internal/repository"
	"timelogger/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	config      *config.Config
	businessAPI api.BusinessAPI
	renderer    *Renderer
	in          io.Reader
	out         io.Writer
	day         string
	registry    *CommandRegistry
}

// NewApp creates a CLI application on top of an open store
func NewApp(cfg *config.Config, store repository.Store, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	businessAPI := api.NewBusinessAPI(store, cfg, func() time.Time { return timeNow() })
	app := &App{
		config:      cfg,
		businessAPI: businessAPI,
		renderer:    NewRenderer(out, cfg.Display, businessAPI.TimeService()),
		in:          in,
		out:         out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetDay selects the day commands open, as given to --date
func (a *App) SetDay(input string) {
	a.day = input
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// openLedger loads the selected day
func (a *App) openLedger(ctx context.Context) (*ledger.Ledger, error) {
	return a.businessAPI.OpenDay(ctx, a.day)
}

// report measures l now and builds the summary view
func (a *App) report(l *ledger.Ledger) *services.DayReport {
	return a.businessAPI.DayReport(l)
}

// commandTimeout bounds one ledger command of the shell
func (a *App) commandTimeout() time.Duration {
	if a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}
