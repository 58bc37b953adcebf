package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"timelogger/internal/config"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
)

// StoreFactory opens the store a loaded configuration selects
type StoreFactory func(ctx context.Context, cfg *config.Config) (repository.Store, error)

// BuildInfo is stamped into the binary at link time
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	openStore StoreFactory
	build     BuildInfo

	in  io.Reader
	out io.Writer

	day    string
	config *config.Config
	store  repository.Store
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, build BuildInfo) *RootCommand {
	root := &RootCommand{
		loader:    loader,
		openStore: config.CreateStore,
		build:     build,
		in:        os.Stdin,
		out:       os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "A command-line time logger for one day at a time",
		Long: `Time Logger (tl) keeps a ledger of the tasks you worked on during a day.

Without a subcommand tl opens an interactive shell on the selected day. Each
line you enter is one command; the day is saved after every change.

COMMANDS IN THE SHELL:
  emails                                   # Stop the running task, start (or create) "emails"
  3                                        # Switch to the task shown at index 3
  emails=9:00-10:30                        # Log emails from 9:00 to 10:30
  lunch=12-now                             # Log lunch from 12:00 and keep it running
  meetings=standup                         # Merge standup into meetings
  meetings=sync                            # Rename meetings to sync (sync does not exist)
  rm 2 / desc 0 fixing CI                  # Delete a task / describe a task
  stop, x / undo, redo / prev, next        # Stop / step through changes / change day
  help / q, exit                           # Show help / leave the shell

  Tasks whose name starts with "." are unpaid: they count towards logged
  time but not towards working time or percentages.

EXAMPLES:
  tl                                       # Shell on today
  tl --date yesterday                      # Shell on yesterday
  tl run "review=13-15"                    # Apply one command and print the day
  tl show --date 2026-10-16                # Print the summary of a day
  tl output format=csv > today.csv         # Export today's intervals

CONFIGURATION:
  Configuration follows this priority order:
    command-line flags > environment variables > .timelogger.yaml > defaults

  The config file is searched in $TL_CONFIG_PATH, the working directory and $HOME.

  Storage Configuration:
    TL_STORAGE_BACKEND                     sqlite, dayfile or mysql (default: sqlite)
    TL_STORAGE_DIR                         Data directory (default: ~/.timelogger)
    TL_STORAGE_FILENAME                    SQLite filename (default: timelogger.db)
    TL_STORAGE_DSN                         MySQL DSN, e.g. user:pass@tcp(host:3306)/timelogger
    TL_STORAGE_QUERY_TIMEOUT               Query timeout (default: 10s)
    TL_STORAGE_WRITE_TIMEOUT               Write timeout (default: 5s)

  Ledger and Display Configuration:
    TL_TIME_DAY_FORMAT                     Day file name layout (default: 2006-01-02_Monday)
    TL_LEDGER_HIDDEN_PREFIX                Unpaid task prefix (default: .)
    TL_LEDGER_MAX_HISTORY                  Undo depth, 0 for unbounded (default: 0)
    TL_DISPLAY_COLOR                       Colored output (default: true)
    TL_DISPLAY_SHOW_PERCENTAGES            Percentages line (default: true)

  Application Configuration:
    TL_APPLICATION_TIMEOUT                 Timeout per command (default: 60s)
    TL_APPLICATION_VERBOSE                 Debug output on stderr (default: false)
    TL_DEBUG                               Debug output on stderr`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return root.prepare(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// the shell bounds each command itself
			return root.app.Run(context.Background(), []string{"shell"})
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetStoreFactory replaces how the store is opened once configuration is loaded
func (r *RootCommand) SetStoreFactory(factory StoreFactory) {
	r.openStore = factory
}

// SetIO replaces stdin and stdout
func (r *RootCommand) SetIO(in io.Reader, out io.Writer) {
	r.in = in
	r.out = out
	r.cmd.SetOut(out)
}

// SetArgs sets the arguments Execute parses instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration the last run used
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Execute runs the root command and closes the store afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.store != nil {
		if closeErr := r.store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.store = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.day, "date", "", "Day to open: YYYY-MM-DD, today, yesterday or an offset like -1")

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, dayfile or mysql (overrides TL_STORAGE_BACKEND)")
	flags.String("dir", "", "Data directory (overrides TL_STORAGE_DIR)")
	flags.String("filename", "", "SQLite filename (overrides TL_STORAGE_FILENAME)")
	flags.String("dsn", "", "MySQL DSN (overrides TL_STORAGE_DSN)")

	// Ledger configuration
	flags.String("day-format", "", "Day file name layout (overrides TL_TIME_DAY_FORMAT)")
	flags.Int("max-history", 0, "Undo depth, 0 for unbounded (overrides TL_LEDGER_MAX_HISTORY)")

	// Display configuration
	flags.Bool("no-color", false, "Disable colored output (overrides TL_DISPLAY_COLOR)")
	flags.Bool("no-percentages", false, "Hide the percentages line (overrides TL_DISPLAY_SHOW_PERCENTAGES)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Timeout per command (overrides TL_APPLICATION_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug output (overrides TL_APPLICATION_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	runCmd := &cobra.Command{
		Use:   "run <command>",
		Short: "Apply one ledger command and print the day",
		Long: `Apply one command of the shell vocabulary to the selected day, save it
and print the summary.

Examples:
  tl run emails                  # Switch to emails
  tl run "lunch=12:00-12:45"     # Log lunch
  tl run x                       # Stop the running task`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return r.app.Run(ctx, append([]string{"run"}, args...))
		},
	}
	runCmd.Flags().SetInterspersed(false)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the summary of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return r.app.Run(ctx, []string{"show"})
		},
	}

	outputCmd := &cobra.Command{
		Use:   "output format=csv|json",
		Short: "Export the intervals of a day",
		Long: `Export every interval of the selected day, one row per interval.

Supported formats:
  csv  - Comma-separated values with a header
  json - An array of objects

Example:
  tl output format=csv --date yesterday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()
			return r.app.Run(ctx, append([]string{"output"}, args...))
		},
	}

	r.cmd.AddCommand(runCmd, showCmd, outputCmd)
	r.addVersion()
}

// addVersion adds the build information command
func (r *RootCommand) addVersion() {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := goversion.FuncWithOutput(shortened, r.build.Version, r.build.Commit, r.build.Date, output)
			_, err := fmt.Fprint(r.out, resp)
			return err
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	r.cmd.AddCommand(cmd)
}

// prepare loads configuration with flag overrides and opens the store
func (r *RootCommand) prepare(ctx context.Context) error {
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := r.loader.LoadWithOverrides(r.getConfigFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)
	if used := r.loader.ConfigFileUsed(); used != "" {
		logging.Debugf("config: using %s\n", used)
	}

	store, err := r.openStore(ctx, cfg)
	if err != nil {
		return NewErrorHandler().Handle("open storage", err)
	}
	r.store = store

	r.app = NewApp(cfg, store, r.in, r.out)
	r.app.SetDay(r.day)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags collects the flags the user set into overrides
func (r *RootCommand) getConfigFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		overrides.StorageBackend = &backend
	}
	if flags.Changed("dir") {
		dir, _ := flags.GetString("dir")
		overrides.StorageDir = &dir
	}
	if flags.Changed("filename") {
		filename, _ := flags.GetString("filename")
		overrides.StorageFilename = &filename
	}
	if flags.Changed("dsn") {
		dsn, _ := flags.GetString("dsn")
		overrides.StorageDSN = &dsn
	}

	if flags.Changed("day-format") {
		dayFormat, _ := flags.GetString("day-format")
		overrides.DayFormat = &dayFormat
	}
	if flags.Changed("max-history") {
		maxHistory, _ := flags.GetInt("max-history")
		overrides.MaxHistory = &maxHistory
	}

	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		useColor := !noColor
		overrides.Color = &useColor
	}
	if flags.Changed("no-percentages") {
		noPercentages, _ := flags.GetBool("no-percentages")
		show := !noPercentages
		overrides.ShowPercentages = &show
	}

	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}

	return overrides
}
