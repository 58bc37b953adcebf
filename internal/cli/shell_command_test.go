package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellCommand_Session(t *testing.T) {
	input := strings.Join([]string{
		"Emails=9-10:30",
		".Lunch=12-12:30",
		"Coding",
		"Nope=25-26",
		"help",
		"q",
		"ignored after quit",
	}, "\n")
	app, out, _ := setupTestApp(t, input)

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, shellPrompt)
	assert.Contains(t, output, "00   1.50h 09:00-->10:30 Emails")
	assert.Contains(t, output, "02 > 0.00h 16:00-->now")
	assert.Contains(t, output, "Emails 100%; Coding 0%;")
	assert.Contains(t, output, "Total logged time: 2.00 hours")
	assert.Contains(t, output, "Total working time: 1.50 hours")
	assert.Contains(t, output, "Sunday 2026-10-18 (today)")
	assert.Contains(t, output, "Running: Coding for 0m")
	assert.Contains(t, output, "(undo available)")
	assert.Contains(t, output, `nothing to do for "Nope=25-26"`)
	assert.Contains(t, output, "merge b into a")
	assert.NotContains(t, output, "ignored after quit")

	l := reopen(t, app)
	assert.Equal(t, []string{"Emails", ".Lunch", "Coding"}, taskNames(l))
}

func TestShellCommand_EndOfInput(t *testing.T) {
	app, out, _ := setupTestApp(t, "")

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Sunday 2026-10-18")
	assert.Contains(t, output, "no tasks logged")
	assert.Contains(t, output, "Total logged time: 0.00 hours")
	assert.NotContains(t, output, "Total working time")
}

func TestShellCommand_ErrorsDoNotEndTheLoop(t *testing.T) {
	app, out, _ := setupTestApp(t, "A=9-10\nA=9-25\nB=10-11\nexit\n")

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "task_name has invalid format")

	l := reopen(t, app)
	assert.Equal(t, []string{"A", "B"}, taskNames(l))
}

func TestShellCommand_Navigation(t *testing.T) {
	app, out, _ := setupTestApp(t, "prev\nOld=9-10\nnext\nq\n")

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Saturday 2026-10-17")
	assert.Contains(t, output, "2026-10-17")

	l := reopen(t, app)
	assert.Empty(t, l.Tasks(), "today is untouched")

	app.SetDay("yesterday")
	l = reopen(t, app)
	assert.Equal(t, []string{"Old"}, taskNames(l))
}

func TestShellCommand_UndoRedo(t *testing.T) {
	app, out, _ := setupTestApp(t, "A=9-10\nB=10-11\nundo\nundo\nundo\nredo\nq\n")

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "nothing to undo")

	l := reopen(t, app)
	assert.Equal(t, []string{"A"}, taskNames(l))
}

func TestShellCommand_InvalidDay(t *testing.T) {
	app, _, _ := setupTestApp(t, "q\n")
	app.SetDay("not-a-day")

	err := NewShellCommand(app).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open day")
}
