package cli

import "context"

// ShowCommand prints the summary of the selected day
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	l, err := c.app.openLedger(ctx)
	if err != nil {
		return c.errorHandler.Handle("open day", err)
	}
	c.app.renderer.Report(c.app.report(l))
	return nil
}
