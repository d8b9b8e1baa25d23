// Package pathutil wraps the directory and path operations used by test
// scripts: the working directory, directory creation and listing, and
// path manipulation.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// RootFolderPath returns the current working directory.
func RootFolderPath() (string, error) {
	return os.Getwd()
}

// RootFolderName returns the last element of the current working directory.
func RootFolderName() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Base(wd), nil
}

// CreateDir creates dir and any missing parents. It is not an error for
// dir to exist already.
func CreateDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	return nil
}

// DirExists reports whether dir exists and is a directory.
func DirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// FilesIn returns the regular files under dir matching pattern, sorted.
// Patterns use glob syntax with ** for any depth, e.g. "*.txt" or
// "**/*.json"; an empty pattern matches every file directly in dir.
// Files reached through symlinks pointing outside dir are skipped.
func FilesIn(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(base), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, m := range matches {
		abs := filepath.Join(base, filepath.FromSlash(m))
		target, err := ResolveWithin(abs, base)
		if err != nil {
			continue
		}
		info, err := os.Stat(target)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return files, nil
}

// Join joins path elements with the OS separator.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Abs returns the absolute form of path.
func Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Parent returns the directory containing path. Unlike filepath.Dir, a
// path without a directory part yields "" rather than ".".
func Parent(path string) string {
	dir := filepath.Dir(path)
	if dir == "." && filepath.Clean(path) != "." && !startsWithDot(path) {
		return ""
	}
	return dir
}

func startsWithDot(path string) bool {
	return len(path) >= 2 && path[0] == '.' && os.IsPathSeparator(path[1])
}
