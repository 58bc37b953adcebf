package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_Execute(t *testing.T) {
	app, out, _ := setupTestApp(t, "")
	cmd := NewRunCommand(app)
	ctx := context.Background()

	t.Run("applies a timed insert and prints the day", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cmd.Execute(ctx, []string{"Emails=9-10"}))

		output := out.String()
		assert.Contains(t, output, "Emails 09:00-10:00")
		assert.Contains(t, output, "00   1.00h 09:00-->10:00 Emails")
		assert.Contains(t, output, "Total logged time: 1.00 hours")
	})

	t.Run("joins arguments into one command line", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cmd.Execute(ctx, []string{"desc", "0", "inbox", "zero"}))
		assert.Contains(t, out.String(), "described Emails")

		task, ok := reopen(t, app).Task("Emails")
		require.True(t, ok)
		assert.Equal(t, "inbox zero", task.Description)
	})

	t.Run("reports commands it cannot apply", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cmd.Execute(ctx, []string{"rm", "Missing"}))
		assert.Contains(t, out.String(), `no task "Missing"`)
	})

	t.Run("returns validation errors", func(t *testing.T) {
		err := cmd.Execute(ctx, []string{"Emails=10-99"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run Emails=10-99")
	})

	t.Run("requires a command", func(t *testing.T) {
		err := cmd.Execute(ctx, []string{" "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tl run <command>")
	})

	t.Run("history does not outlive a run", func(t *testing.T) {
		require.NoError(t, cmd.Execute(ctx, []string{"Meetings=10-11"}))
		require.NoError(t, cmd.Execute(ctx, []string{"undo"}))
		assert.Contains(t, out.String(), "nothing to undo")
		assert.Equal(t, []string{"Emails", "Meetings"}, taskNames(reopen(t, app)))
	})
}

func TestShowCommand_Execute(t *testing.T) {
	app, out, _ := setupTestApp(t, "")
	seed(t, app, "Emails=9-10", ".Break=10-10:30", "Coding=10:30-now")

	require.NoError(t, NewShowCommand(app).Execute(context.Background(), nil))

	output := out.String()
	assert.Contains(t, output, "Sunday 2026-10-18")
	assert.Contains(t, output, "Emails 15%; Coding 85%;")
	assert.Contains(t, output, "02 > 5.50h 10:30-->now")
	assert.Contains(t, output, "Total logged time: 7.00 hours")
	assert.Contains(t, output, "Total working time: 6.50 hours")
}

func TestShowCommand_HidesPercentages(t *testing.T) {
	app, out, _ := setupTestApp(t, "")
	app.renderer.display.ShowPercentages = false
	seed(t, app, "Emails=9-10")

	require.NoError(t, NewShowCommand(app).Execute(context.Background(), nil))
	assert.NotContains(t, out.String(), "100%")
}
