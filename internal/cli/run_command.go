package cli

import (
	"context"
	"strings"

	"timelogger/internal/errors"
)

// RunCommand applies a single ledger command and prints the day after it
type RunCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRunCommand creates a new run command handler
func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute joins args into one command line, so `tl run desc 0 fixing CI`
// and `tl run "desc 0 fixing CI"` are the same.
func (c *RunCommand) Execute(ctx context.Context, args []string) error {
	line := strings.TrimSpace(strings.Join(args, " "))
	if line == "" {
		return errors.NewInvalidInputError("command", "run", "usage: tl run <command>")
	}

	l, err := c.app.openLedger(ctx)
	if err != nil {
		return c.errorHandler.Handle("open day", err)
	}

	res, err := l.Execute(ctx, line)
	if err != nil {
		return c.errorHandler.Handle("run "+line, err)
	}

	c.app.renderer.Notice(res.Message)
	c.app.renderer.Report(c.app.report(l))
	return nil
}
