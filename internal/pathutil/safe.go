package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxSymlinkHops = 255

// Within reports whether path is base itself or lies below it, after
// cleaning both. Symlinks are not followed.
func Within(path, base string) bool {
	cleanPath := filepath.Clean(path)
	cleanBase := filepath.Clean(base)
	return cleanPath == cleanBase || strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

// ResolveWithin follows any symlinks along path and returns the real
// location, failing if it, or any link on the way, leaves base. Components
// that do not exist yet end the walk and are appended unresolved.
func ResolveWithin(path, base string) (string, error) {
	cleanBase := filepath.Clean(base)
	cleanPath := filepath.Clean(path)

	if !Within(cleanPath, cleanBase) {
		return "", fmt.Errorf("path escapes %s: %s", cleanBase, cleanPath)
	}

	rel, err := filepath.Rel(cleanBase, cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == "." {
		return cleanBase, nil
	}

	parts := strings.Split(rel, string(filepath.Separator))
	resolved := cleanBase
	hops := 0

	for i := 0; i < len(parts); i++ {
		resolved = filepath.Join(resolved, parts[i])

		info, err := os.Lstat(resolved)
		if os.IsNotExist(err) {
			return filepath.Join(resolved, filepath.Join(parts[i+1:]...)), nil
		}
		if err != nil {
			return "", fmt.Errorf("lstat %s: %w", resolved, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			continue
		}

		hops++
		if hops > maxSymlinkHops {
			return "", fmt.Errorf("too many symlinks while resolving %s", cleanPath)
		}

		target, err := os.Readlink(resolved)
		if err != nil {
			return "", fmt.Errorf("readlink %s: %w", resolved, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(resolved), target)
		}
		target = filepath.Clean(target)
		if !Within(target, cleanBase) {
			return "", fmt.Errorf("symlink escapes %s: %s -> %s", cleanBase, resolved, target)
		}

		// Restart the walk from base with the link replaced by its target.
		rest, err := filepath.Rel(cleanBase, filepath.Join(target, filepath.Join(parts[i+1:]...)))
		if err != nil {
			return "", fmt.Errorf("failed to compute relative path: %w", err)
		}
		if rest == "." {
			return cleanBase, nil
		}
		parts = strings.Split(rest, string(filepath.Separator))
		resolved = cleanBase
		i = -1
	}

	return resolved, nil
}
