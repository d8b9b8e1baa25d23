package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/duration"
	"github.com/chinmaymudholkar/automation-snippets/internal/progress"
)

func newDurationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Work with compact duration expressions such as 2d5h10m",
	}

	var strict bool
	parseCmd := &cobra.Command{
		Use:   "parse EXPRESSION",
		Short: "Print the number of seconds in a duration expression",
		Long: `Print the number of seconds in a duration expression.

Units are d (days), h (hours), m (minutes) and s (seconds), in either case.
Digits at the end without a unit are ignored unless --strict is given.`,
		Example: "  snippets duration parse 2d5h10m\n  snippets duration parse --strict 10m5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := duration.Parse
			if strict {
				parse = duration.ParseStrict
			}
			seconds, err := parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatSeconds(seconds))
			return nil
		},
	}
	parseCmd.Flags().BoolVar(&strict, "strict", false, "Reject trailing digits that have no unit")

	cmd.AddCommand(parseCmd)
	return cmd
}

func newWaitCmd(a *app) *cobra.Command {
	var extended bool
	cmd := &cobra.Command{
		Use:   "wait EXPRESSION",
		Short: "Block for a duration expression such as 1h30m",
		Long: `Block for a duration expression such as 1h30m.

With --extended the expression is a Go-style duration that also accepts
days and weeks, e.g. "1w2d", "1h30m" or "300ms".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.waiter()
			if !extended {
				return w.WaitForDuration(cmd.Context(), args[0])
			}
			d, err := duration.ParseExtended(args[0])
			if err != nil {
				return err
			}
			return w.Wait(cmd.Context(), d)
		},
	}
	cmd.Flags().BoolVar(&extended, "extended", false, "Parse a Go-style duration with ms/us/ns, days and weeks")
	return cmd
}

func newSleepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sleep SECONDS",
		Short: "Block for a number of seconds (fractions allowed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number of seconds %q: %w", args[0], err)
			}
			return a.waiter().WaitFor(cmd.Context(), seconds)
		},
	}
}

func (a *app) waiter() *duration.Waiter {
	w := duration.NewWaiter(a.logger)
	w.Sleeper = progress.Sleeper{
		Next:     a.sleeper(),
		Interval: a.cfg.Wait.ProgressInterval,
		Logger:   a.logger,
		Quiet:    a.quiet,
	}
	return w
}

// sleeper is replaced in tests.
func (a *app) sleeper() duration.Sleeper {
	if a.sleep != nil {
		return a.sleep
	}
	return duration.TimerSleeper{}
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
