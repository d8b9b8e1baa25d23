package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/cleanup"
	"github.com/chinmaymudholkar/automation-snippets/internal/config"
	"github.com/chinmaymudholkar/automation-snippets/internal/datetime"
	"github.com/chinmaymudholkar/automation-snippets/internal/duration"
	"github.com/chinmaymudholkar/automation-snippets/internal/logging"
	"github.com/chinmaymudholkar/automation-snippets/internal/table"
	"github.com/chinmaymudholkar/automation-snippets/internal/version"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath   string
	logLevel     string
	logFormat    string
	logFile      string
	outputFormat string
	quiet        bool
	chdir        string
	chdirCreate  bool

	cfg     *config.Config
	logger  *slog.Logger
	tracker *cleanup.Tracker
	sleep   duration.Sleeper
	now     datetime.Clock
}

// NewRootCmd builds the command tree. tracker may be nil.
func NewRootCmd(tracker *cleanup.Tracker) *cobra.Command {
	return newRootCmd(&app{tracker: tracker})
}

func newRootCmd(a *app) *cobra.Command {
	a.cfg = config.Default()
	a.logger = slog.Default()

	rootCmd := &cobra.Command{
		Use:   "snippets",
		Short: "Helpers for test-automation scripts",
		Long: `snippets

Small, stateless helpers for test-automation scripts: waiting on compact
durations such as "2d5h10m", SQLite/PostgreSQL queries, text and CSV files,
directories, dates and random test data.
`,
		Version:           version.Print(),
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML settings file (default: ./snippets.yaml or ~/.config/snippets/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to this file, rotated by size, instead of stderr")
	flags.StringVarP(&a.outputFormat, "output-format", "o", "text", "Format for tabular results: text, csv, json, yaml")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress progress logging")
	flags.StringVarP(&a.chdir, "chdir", "C", "", "Change working directory before any operation")
	flags.BoolVar(&a.chdirCreate, "chdir-create", false, "Create directory if it doesn't exist (requires --chdir)")

	// SilenceErrors is true so main controls the error output format
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Show usage only when there's a flag parsing error
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	rootCmd.AddCommand(
		newDurationCmd(a),
		newWaitCmd(a),
		newSleepCmd(a),
		newDateCmd(a),
		newDBCmd(a),
		newFileCmd(a),
		newDirCmd(a),
		newRandCmd(a),
	)
	return rootCmd
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context, tracker *cleanup.Tracker) error {
	rootCmd := NewRootCmd(tracker)
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		// Show usage for argument count errors (not caught by SetFlagErrorFunc)
		if strings.Contains(err.Error(), "arg(s)") {
			_ = cmd.Usage()
		}
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Change directory first so relative config and data paths resolve there
	if a.chdir != "" {
		if a.chdirCreate {
			if err := os.MkdirAll(a.chdir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", a.chdir, err)
			}
		}
		if err := os.Chdir(a.chdir); err != nil {
			return fmt.Errorf("failed to change directory to %q: %w", a.chdir, err)
		}
	} else if a.chdirCreate {
		return fmt.Errorf("--chdir-create requires --chdir to be specified")
	}

	cfg, used, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logOpts := logging.Options{
		Level:      firstNonEmpty(a.logLevel, cfg.Log.Level),
		Format:     firstNonEmpty(a.logFormat, cfg.Log.Format),
		File:       firstNonEmpty(a.logFile, cfg.Log.File),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	logger, err := logging.NewWithOptions(logOpts)
	if err != nil {
		return fmt.Errorf("invalid logging configuration: %w", err)
	}
	a.logger = logger
	cleanup.SetLogger(logger)
	cmd.SetContext(logging.WithContext(cmd.Context(), logger))

	if used != "" {
		logger.Debug("config_loaded", "path", used)
	}
	return nil
}

func (a *app) writeTable(cmd *cobra.Command, t *table.Table) error {
	return t.Write(cmd.OutOrStdout(), a.outputFormat)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
