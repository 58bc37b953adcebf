package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"timelogger/internal/config"
	"timelogger/internal/ledger"
	"timelogger/internal/services"
)

// dayTitleLayout heads the summary of a day
const dayTitleLayout = "Monday 2006-01-02"

// Renderer prints day reports the way the shell shows them
type Renderer struct {
	out         io.Writer
	display     config.DisplayConfig
	timeService services.TimeService

	title  *color.Color
	active *color.Color
	unpaid *color.Color
	faint  *color.Color
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, display config.DisplayConfig, timeService services.TimeService) *Renderer {
	r := &Renderer{
		out:         out,
		display:     display,
		timeService: timeService,
		title:       color.New(color.Bold, color.Underline),
		active:      color.New(color.Bold, color.FgGreen),
		unpaid:      color.New(color.Faint, color.Italic),
		faint:       color.New(color.Faint),
	}
	if !display.Color {
		for _, c := range []*color.Color{r.title, r.active, r.unpaid, r.faint} {
			c.DisableColor()
		}
	}
	return r
}

// Report prints the percentages, one row per task and the day's totals
func (r *Renderer) Report(report *services.DayReport) {
	summary := report.Summary

	_, _ = fmt.Fprintln(r.out, "")
	title := summary.Day.Format(dayTitleLayout)
	if r.timeService.IsToday(summary.Day, summary.Now) {
		title += " (today)"
	}
	_, _ = fmt.Fprintln(r.out, r.title.Sprint(title))

	if r.display.ShowPercentages && len(report.Percentages.Tasks) > 0 {
		r.percentages(report.Percentages)
	}
	_, _ = fmt.Fprintln(r.out, "")

	if len(summary.Rows) == 0 {
		_, _ = fmt.Fprintln(r.out, r.faint.Sprint("no tasks logged"))
	} else {
		tbl := uitable.New()
		tbl.Separator = " "
		for _, row := range summary.Rows {
			marker := " "
			name := row.Name
			switch {
			case row.Active:
				marker = r.display.ActiveMarker
				name = r.active.Sprint(row.Name)
			case row.Unpaid:
				name = r.unpaid.Sprint(row.Name)
			}
			tbl.AddRow(fmt.Sprintf("%02d", row.Index), marker, r.timeService.FormatHours(row.TotalHours), row.SpanLabel, name)
		}
		_, _ = fmt.Fprintln(r.out, tbl)
	}

	_, _ = fmt.Fprintln(r.out, "")
	_, _ = fmt.Fprintf(r.out, "Total logged time: %.2f hours\n", summary.TotalHoursAll)
	if report.ShowWorkingTime {
		_, _ = fmt.Fprintf(r.out, "Total working time: %.2f hours\n", summary.TotalHoursPaid)
	}
	if name, ok := summary.ActiveTask(); ok && !summary.ActiveSince.IsZero() {
		running := r.timeService.FormatDuration(summary.Now.Sub(summary.ActiveSince))
		_, _ = fmt.Fprintf(r.out, "Running: %s for %s\n", r.active.Sprint(name), running)
	}
	r.history(summary)
}

// history hints at the undo and redo steps available
func (r *Renderer) history(summary ledger.Summary) {
	var steps []string
	if summary.CanUndo {
		steps = append(steps, "undo")
	}
	if summary.CanRedo {
		steps = append(steps, "redo")
	}
	if len(steps) == 0 {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.faint.Sprintf("(%s available)", strings.Join(steps, ", ")))
}

func (r *Renderer) percentages(p services.Percentages) {
	parts := make([]string, 0, len(p.Tasks))
	for _, task := range p.Tasks {
		parts = append(parts, fmt.Sprintf("%s %d%%;", task.Name, task.Percent))
	}
	_, _ = fmt.Fprintln(r.out, strings.Join(parts, " "))
	if p.Correction != 0 {
		_, _ = fmt.Fprintln(r.out, r.faint.Sprintf("Percent correction on last task to ensure sum of 100%%: %d%%", p.Correction))
	}
}

// Notice prints a one-line message about the last command
func (r *Renderer) Notice(message string) {
	if message == "" {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.faint.Sprint(message))
}

// Help prints the command vocabulary of the shell
func (r *Renderer) Help() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(r.title.Sprint("Command"), r.title.Sprint("Meaning"))
	for _, line := range helpLines {
		tbl.AddRow(line[0], line[1])
	}
	_, _ = fmt.Fprintln(r.out, tbl)
}

var helpLines = [][2]string{
	{"''", "update view"},
	{"<name/id>", "stop the running task and start (or create) this one"},
	{"a=b", "merge b into a"},
	{"a=b=c", "merge b and c into a"},
	{"a=new_name", "rename a"},
	{"a=b=new_name", "merge b into a, then rename a"},
	{"a=12:15-18", "log a from 12:15 to 18:00, clearing that time from other tasks"},
	{"a=9-now", "log a from 9:00 and keep it running"},
	{"rm <name/id>", "delete a task"},
	{"desc <name/id> <text>", "set a task's description"},
	{"stop | x", "stop the running task"},
	{"undo | redo", "step back or forward through changes"},
	{"prev | <", "open the previous day"},
	{"next | >", "open the next day"},
	{"help", "show this help"},
	{"exit | q", "leave the shell"},
}
