package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/pathutil"
)

func newDirCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Directory and path helpers",
	}

	printString := func(f func() (string, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := f()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}
	}

	rootNameCmd := &cobra.Command{
		Use:   "root-name",
		Short: "Print the name of the working directory",
		Args:  cobra.NoArgs,
		RunE:  printString(pathutil.RootFolderName),
	}

	rootPathCmd := &cobra.Command{
		Use:   "root-path",
		Short: "Print the absolute path of the working directory",
		Args:  cobra.NoArgs,
		RunE:  printString(pathutil.RootFolderPath),
	}

	createCmd := &cobra.Command{
		Use:   "create DIR",
		Short: "Create a directory and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pathutil.CreateDir(args[0]); err != nil {
				return err
			}
			a.logger.Debug("directory_created", "dir", args[0])
			return nil
		},
	}

	existsCmd := &cobra.Command{
		Use:   "exists DIR",
		Short: "Print true if DIR is an existing directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(pathutil.DirExists(args[0])))
			return nil
		},
	}

	var pattern string
	listCmd := &cobra.Command{
		Use:     "list DIR",
		Short:   "List the files in DIR matching a glob pattern",
		Example: "  snippets dir list ./reports --pattern '**/*.xml'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := pathutil.FilesIn(args[0], pattern)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&pattern, "pattern", "p", "*", "Glob pattern; ** matches any depth")

	joinCmd := &cobra.Command{
		Use:   "join ELEM...",
		Short: "Join path elements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Join(args...))
			return nil
		},
	}

	absCmd := &cobra.Command{
		Use:   "abs PATH",
		Short: "Print the absolute form of PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printString(func() (string, error) { return pathutil.Abs(args[0]) })(cmd, args)
		},
	}

	parentCmd := &cobra.Command{
		Use:   "parent PATH",
		Short: "Print the directory containing PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Parent(args[0]))
			return nil
		},
	}

	cmd.AddCommand(rootNameCmd, rootPathCmd, createCmd, existsCmd, listCmd, joinCmd, absCmd, parentCmd)
	return cmd
}
