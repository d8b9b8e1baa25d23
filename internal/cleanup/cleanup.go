package cleanup

import (
	"log/slog"
	"os"
	"sort"
	"sync"
)

var logger = slog.Default()

// SetLogger overrides the cleanup logger (useful for CLI configured logging).
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Tracker remembers temporary paths that must not outlive the process,
// such as the staging file of an atomic write that was interrupted.
type Tracker struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{paths: make(map[string]struct{})}
}

// Track adds path to the set removed by RemoveAll. Empty paths are ignored.
// A nil Tracker ignores every call.
func (t *Tracker) Track(path string) {
	if t == nil || path == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths[path] = struct{}{}
}

// Release forgets path, typically once it has been renamed into place.
func (t *Tracker) Release(path string) {
	if t == nil || path == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.paths, path)
}

// Paths returns the tracked paths in sorted order.
func (t *Tracker) Paths() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.paths))
	for p := range t.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// RemoveAll deletes every tracked path and empties the tracker.
func (t *Tracker) RemoveAll() {
	if t == nil {
		return
	}
	t.mu.Lock()
	paths := t.paths
	t.paths = make(map[string]struct{})
	t.mu.Unlock()

	for p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			// Best effort
			logger.Warn("cleanup_failed", "file", p, "error", err)
		}
	}
}
