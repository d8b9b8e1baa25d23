// Package version reports the build of the snippets binary.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	VersionPrefix = "dev"     // Set via -ldflags
	VersionDate   = "edge"    // Set via -ldflags - Value should be: YYYYMMDD
	CommitHash    = "unknown" // Set via -ldflags
)

// Print returns "<prefix>-<date>-<commit>". Without -ldflags the commit
// falls back to the VCS revision recorded by the Go toolchain.
func Print() string {
	return format(VersionPrefix, VersionDate, commit(CommitHash, debug.ReadBuildInfo))
}

func format(prefix, date, hash string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, date, hash)
}

func commit(hash string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if hash != "unknown" && hash != "" {
		return hash
	}
	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "unknown"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}
