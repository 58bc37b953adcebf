package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"timelogger/internal/errors"
	"timelogger/internal/services"
)

// OutputCommand handles the output command
type OutputCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	return c.outputDay(ctx, args)
}

// outputDay exports the intervals of the selected day in the requested format
func (c *OutputCommand) outputDay(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "output", "usage: tl output format=csv|json")
	}

	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}
	format = strings.TrimPrefix(format, "format=")
	if format != "csv" && format != "json" {
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}

	l, err := c.app.openLedger(ctx)
	if err != nil {
		return c.errorHandler.Handle("open day", err)
	}
	rows := c.app.businessAPI.ExportDay(l)

	if format == "json" {
		return c.outputJSON(rows)
	}
	return c.outputCSV(rows)
}

// outputCSV writes one line per interval with a header
func (c *OutputCommand) outputCSV(rows []services.ExportRow) error {
	writer := csv.NewWriter(c.app.out)
	defer writer.Flush()

	header := []string{"Day", "Task", "Description", "Start", "End", "Hours", "Unpaid"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Day,
			row.Task,
			row.Description,
			row.Start,
			row.End,
			fmt.Sprintf("%.2f", row.Hours),
			strconv.FormatBool(row.Unpaid),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// outputJSON writes the rows as an indented JSON array
func (c *OutputCommand) outputJSON(rows []services.ExportRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(c.app.out, string(data))
	return err
}
