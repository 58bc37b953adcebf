package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"timelogger/internal/ledger"
	"timelogger/internal/logging"
)

const (
	shellPrompt = "Enter a task (name/id) or command (help): "
	shellHelp   = "help"
	shellQuit   = "q"
	shellExit   = "exit"
)

// ShellCommand runs the interactive loop on one ledger
type ShellCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShellCommand creates a new shell command handler
func NewShellCommand(app *App) *ShellCommand {
	return &ShellCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows the day and applies one command per input line until the
// input ends or the user quits. A failed command is reported and the loop
// goes on.
func (c *ShellCommand) Execute(ctx context.Context, args []string) error {
	l, err := c.app.openLedger(ctx)
	if err != nil {
		return c.errorHandler.Handle("open day", err)
	}

	renderer := c.app.renderer
	scanner := bufio.NewScanner(c.app.in)
	for {
		renderer.Report(c.app.report(l))
		_, _ = fmt.Fprintln(c.app.out, "")
		_, _ = fmt.Fprint(c.app.out, shellPrompt)

		if !scanner.Scan() {
			_, _ = fmt.Fprintln(c.app.out, "")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case shellQuit, shellExit:
			return nil
		case shellHelp:
			renderer.Help()
			continue
		}

		res, err := c.execute(ctx, l, line)
		if err != nil {
			logging.Debugf("shell: %q failed: %v\n", line, err)
			renderer.Notice(c.errorHandler.HandleSimple(err).Error())
			continue
		}
		renderer.Notice(res.Message)
	}
}

func (c *ShellCommand) execute(ctx context.Context, l *ledger.Ledger, line string) (ledger.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.app.commandTimeout())
	defer cancel()
	return l.Execute(ctx, line)
}
