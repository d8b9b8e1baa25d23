package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/database"
)

func newDBCmd(a *app) *cobra.Command {
	var (
		dsn     string
		rawArgs []string
	)

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Run SQL against a SQLite file or PostgreSQL URL",
		Long: `Run SQL against a SQLite file or PostgreSQL URL.

--dsn is a SQLite file path, or a postgres:// URL. It defaults to
database.dsn from the settings file. Statement parameters are passed with
--arg and bound in order (? for SQLite, $1, $2... for PostgreSQL).`,
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "SQLite file path or postgres:// URL")
	cmd.PersistentFlags().StringArrayVar(&rawArgs, "arg", nil, "Statement parameter, may be repeated")

	target := func() (string, error) {
		if d := firstNonEmpty(dsn, a.cfg.Database.DSN); d != "" {
			return d, nil
		}
		return "", errors.New("no database given: use --dsn or set database.dsn")
	}
	params := func() []any {
		out := make([]any, len(rawArgs))
		for i, v := range rawArgs {
			out[i] = v
		}
		return out
	}

	var column string
	queryCmd := &cobra.Command{
		Use:     "query SQL",
		Short:   "Run a query and print every row",
		Example: "  snippets db query --dsn app.db --column email 'SELECT * FROM users'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			t, err := database.Query(cmd.Context(), d, args[0], params()...)
			if err != nil {
				return err
			}
			if column == "" {
				return a.writeTable(cmd, t)
			}
			values, err := t.Column(column)
			if err != nil {
				return err
			}
			for _, v := range values {
				if v == nil {
					fmt.Fprintln(cmd.OutOrStdout())
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	queryCmd.Flags().StringVarP(&column, "column", "c", "", "Print only this column, one value per line")

	execCmd := &cobra.Command{
		Use:   "exec SQL",
		Short: "Run an INSERT/UPDATE/DELETE statement and print the affected row count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			n, err := database.ExecuteNonQuery(cmd.Context(), d, args[0], params()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	scalarCmd := &cobra.Command{
		Use:   "scalar SQL",
		Short: "Print the first column of the first row, or nothing if there are no rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			v, err := database.ExecuteScalar(cmd.Context(), d, args[0], params()...)
			if err != nil {
				return err
			}
			if v != nil {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			names, err := database.TableNames(cmd.Context(), d)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	existsCmd := &cobra.Command{
		Use:   "exists TABLE",
		Short: "Print true if the table exists, false otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			ok, err := database.TableExists(cmd.Context(), d, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return nil
		},
	}

	countCmd := &cobra.Command{
		Use:   "count TABLE|SELECT",
		Short: "Print the number of rows in a table or returned by a SELECT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := target()
			if err != nil {
				return err
			}
			n, err := database.RowCount(cmd.Context(), d, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	cmd.AddCommand(queryCmd, execCmd, scalarCmd, tablesCmd, existsCmd, countCmd)
	return cmd
}
