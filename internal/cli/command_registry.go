package cli

import (
	"context"
	"sort"
	"strings"

	"timelogger/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry maps the first argument of App.Run to a handler
type CommandRegistry struct {
	commands map[string]Command
	synopses map[string]string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
		synopses: make(map[string]string),
	}

	registry.Register("shell", NewShellCommand(app))
	registry.Register("run", NewRunCommand(app))
	registry.Register("show", NewShowCommand(app))
	registry.Register("output", NewOutputCommand(app))

	registry.synopses["shell"] = "tl [shell]"
	registry.synopses["run"] = "tl run <command>"
	registry.synopses["output"] = "tl output format=csv|json"

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewNotFoundError("command", commandName)
	}
	return command.Execute(ctx, args)
}

// Names lists the registered commands in alphabetical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage lists one synopsis per registered command
func (r *CommandRegistry) GetUsage() string {
	forms := make([]string, 0, len(r.commands))
	for _, name := range r.Names() {
		if synopsis, ok := r.synopses[name]; ok {
			forms = append(forms, synopsis)
		} else {
			forms = append(forms, "tl "+name)
		}
	}
	return "usage: " + strings.Join(forms, " or ")
}
