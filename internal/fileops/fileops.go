// Package fileops reads and writes text and CSV files for test scripts.
// Readers accept gzip, zstd, xz and bzip2 files as well as plain ones.
package fileops

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chinmaymudholkar/automation-snippets/internal/cleanup"
	"github.com/chinmaymudholkar/automation-snippets/internal/table"
)

// ErrTooLarge is returned by ReadTextLimit when a file exceeds the limit.
var ErrTooLarge = errors.New("file exceeds size limit")

// ErrEmptyCSV is returned by LoadCSV for a file with no header record.
var ErrEmptyCSV = errors.New("csv file has no header")

// ReadText returns the whole (decompressed) contents of path.
func ReadText(path string) (string, error) {
	return ReadTextLimit(path, 0)
}

// ReadTextLimit is ReadText with an upper bound on the decompressed size.
// A limit of 0 means no limit.
func ReadTextLimit(path string, limit int64) (string, error) {
	rc, _, err := Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s is larger than %s", ErrTooLarge, path, humanize.IBytes(uint64(limit)))
	}
	return string(data), nil
}

// ReadLines returns the lines of path. Each line keeps its terminator; the
// last line has none if the file does not end with a newline.
func ReadLines(path string) ([]string, error) {
	rc, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}

// WriteText replaces the contents of path with content.
func WriteText(path, content string) error {
	return WriteTextTracked(nil, path, content)
}

// WriteTextTracked writes content to a temporary file next to path and
// renames it into place. The temporary file is tracked until the rename so an
// interrupted write leaves nothing behind.
func WriteTextTracked(tracker *cleanup.Tracker, path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tracker.Track(tmpPath)
	defer func() {
		os.Remove(tmpPath)
		tracker.Release(tmpPath)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// AppendText appends content to path, creating the file if needed.
func AppendText(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return f.Close()
}

// Exists reports whether path is an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Delete removes path if it is a regular file and reports whether it did.
func Delete(path string) (bool, error) {
	if !Exists(path) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return true, nil
}

// Size returns the size of path in bytes.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// HumanSize returns the size of path formatted with IEC units, e.g. "1.5 MiB".
func HumanSize(path string) (string, error) {
	n, err := Size(path)
	if err != nil {
		return "", err
	}
	return humanize.IBytes(uint64(n)), nil
}

// Extension returns the extension of path without the leading dot.
// Leading dots of the file name are not an extension: ".bashrc" has none.
func Extension(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimPrefix(splitExt(filepath.Base(path)), ".")
}

// NameWithoutExtension returns the file name of path minus its extension.
func NameWithoutExtension(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, splitExt(base))
}

func splitExt(base string) string {
	return filepath.Ext(strings.TrimLeft(base, "."))
}

// LoadCSV reads a CSV file whose first record is the header. Every cell is
// returned as a string.
func LoadCSV(path string) (*table.Table, error) {
	rc, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCSV, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	t := table.New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		if err := t.Append(row...); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return t, nil
}
