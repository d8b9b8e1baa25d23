package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/random"
)

func newRandCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Generate random test data",
	}

	var length int
	cmd.PersistentFlags().IntVarP(&length, "length", "n", 0, "Number of characters (default: random.length setting, 10)")

	size := func(cmd *cobra.Command) int {
		if cmd.Flags().Changed("length") {
			return length
		}
		return a.cfg.Random.Length
	}

	stringCmd := &cobra.Command{
		Use:   "string",
		Short: "Print a random alphanumeric string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := random.String(size(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	digitsCmd := &cobra.Command{
		Use:   "digits",
		Short: "Print a random string of decimal digits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := random.Digits(size(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	uuidCmd := &cobra.Command{
		Use:   "uuid",
		Short: "Print a random UUID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), random.UUID())
			return nil
		},
	}

	cmd.AddCommand(stringCmd, digitsCmd, uuidCmd)
	return cmd
}
