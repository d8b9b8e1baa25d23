package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chinmaymudholkar/automation-snippets/internal/fileops"
	"github.com/chinmaymudholkar/automation-snippets/internal/table"
)

func newFileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Read, write and inspect text and CSV files",
		Long: `Read, write and inspect text and CSV files.

read, lines and csv decompress gzip, zstd, xz and bzip2 files on the fly.`,
	}

	var maxBytesStr string
	readCmd := &cobra.Command{
		Use:   "read PATH",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var limit int64
			if maxBytesStr != "" {
				n, err := humanize.ParseBytes(maxBytesStr)
				if err != nil {
					return fmt.Errorf("invalid --max-bytes value: %w", err)
				}
				limit = int64(n)
			}
			text, err := fileops.ReadTextLimit(args[0], limit)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	readCmd.Flags().StringVarP(&maxBytesStr, "max-bytes", "M", "", "Fail if the (decompressed) file is larger than this, e.g. \"64MiB\"")

	linesCmd := &cobra.Command{
		Use:   "lines PATH",
		Short: "Print the lines of a file as a table with line numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := fileops.ReadLines(args[0])
			if err != nil {
				return err
			}
			t, err := newLinesTable(lines)
			if err != nil {
				return err
			}
			return a.writeTable(cmd, t)
		},
	}

	writeCmd := &cobra.Command{
		Use:   "write PATH [CONTENT]",
		Short: "Replace a file with CONTENT, or with standard input",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := contentArg(cmd, args)
			if err != nil {
				return err
			}
			return fileops.WriteTextTracked(a.tracker, args[0], content)
		},
	}

	appendCmd := &cobra.Command{
		Use:   "append PATH [CONTENT]",
		Short: "Append CONTENT, or standard input, to a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := contentArg(cmd, args)
			if err != nil {
				return err
			}
			return fileops.AppendText(args[0], content)
		},
	}

	existsCmd := &cobra.Command{
		Use:   "exists PATH",
		Short: "Print true if PATH is a regular file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(fileops.Exists(args[0])))
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete a file; prints true if something was deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := fileops.Delete(args[0])
			if err != nil {
				return err
			}
			if deleted {
				a.logger.Debug("file_deleted", "file", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(deleted))
			return nil
		},
	}

	var human bool
	sizeCmd := &cobra.Command{
		Use:   "size PATH",
		Short: "Print the size of a file in bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if human {
				s, err := fileops.HumanSize(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			n, err := fileops.Size(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	sizeCmd.Flags().BoolVarP(&human, "human", "H", false, "Print with IEC units, e.g. 1.5 MiB")

	extCmd := &cobra.Command{
		Use:   "ext PATH",
		Short: "Print the extension of PATH without the dot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), fileops.Extension(args[0]))
			return nil
		},
	}

	stemCmd := &cobra.Command{
		Use:   "stem PATH",
		Short: "Print the file name of PATH without its extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), fileops.NameWithoutExtension(args[0]))
			return nil
		},
	}

	csvCmd := &cobra.Command{
		Use:   "csv PATH",
		Short: "Load a CSV file with a header row and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := fileops.LoadCSV(args[0])
			if err != nil {
				return err
			}
			return a.writeTable(cmd, t)
		},
	}

	cmd.AddCommand(readCmd, linesCmd, writeCmd, appendCmd, existsCmd, deleteCmd, sizeCmd, extCmd, stemCmd, csvCmd)
	return cmd
}

func contentArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}

func newLinesTable(lines []string) (*table.Table, error) {
	t := table.New("line", "text")
	for i, l := range lines {
		if err := t.Append(i+1, strings.TrimRight(l, "\r\n")); err != nil {
			return nil, err
		}
	}
	return t, nil
}
