package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/datetime"
)

func newDateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Print the current date or time with a strftime pattern",
	}

	var todayFormat string
	todayCmd := &cobra.Command{
		Use:     "today",
		Short:   "Print today's date (default pattern %Y-%m-%d)",
		Example: "  snippets date today --format %d-%b-%Y",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := datetime.TodayDate(a.clock(), firstNonEmpty(todayFormat, a.cfg.DateTime.DateFormat))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	todayCmd.Flags().StringVarP(&todayFormat, "format", "f", "", "strftime pattern, e.g. %m/%d/%Y")

	var nowFormat string
	nowCmd := &cobra.Command{
		Use:     "now",
		Short:   "Print the current timestamp (default pattern %Y-%m-%d %H:%M:%S)",
		Example: "  snippets date now --format %Y%m%d_%H%M%S",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := datetime.CurrentTimestamp(a.clock(), firstNonEmpty(nowFormat, a.cfg.DateTime.TimestampFormat))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	nowCmd.Flags().StringVarP(&nowFormat, "format", "f", "", "strftime pattern, e.g. %Y%m%d_%H%M%S")

	sinceCmd := &cobra.Command{
		Use:     "since TIMESTAMP",
		Short:   "Describe how long ago TIMESTAMP was, e.g. \"3 minutes ago\"",
		Example: "  snippets date since \"2024-03-05 14:07:09\"\n  snippets date since 2024-03-05T14:07:09Z",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := a.clock()
			then, err := datetime.ParseTimestamp(args[0], clock.Now().Location())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), datetime.Since(clock, then))
			return nil
		},
	}

	cmd.AddCommand(todayCmd, nowCmd, sinceCmd)
	return cmd
}

func (a *app) clock() datetime.Clock {
	if a.now != nil {
		return a.now
	}
	return datetime.SystemClock
}
