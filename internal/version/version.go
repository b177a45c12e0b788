// Package version provides version and build information for weatherfile.
package version

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Linker-injected variables. Set via:
//
//	go build -ldflags "-X github.com/leefowlercu/weatherfile/internal/version.gitCommit=VALUE"
var (
	gitCommit string
	buildDate string
)

// Info represents version and build information.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
}

// String formats Info for human-readable display.
func (i Info) String() string {
	return fmt.Sprintf("Version:    %s\nGit Commit: %s\nBuild Date: %s",
		i.Version, i.GitCommit, i.BuildDate)
}

// Get returns the populated Info struct.
func Get() Info {
	return Info{
		Version:   getVersion(),
		GitCommit: getGitCommit(),
		BuildDate: getBuildDate(),
	}
}

// UserAgent returns the User-Agent sent with outbound weather API requests.
func UserAgent() string {
	return "weatherfile/" + getVersion()
}

func getVersion() string {
	return strings.TrimSpace(versionFile)
}

// getGitCommit prefers the linker flag, then VCS build info, then "unknown".
func getGitCommit() string {
	if gitCommit != "" {
		return gitCommit
	}

	revision, dirty := readBuildInfo()
	if revision == "" {
		return "unknown"
	}
	if dirty {
		return revision + "-dirty"
	}
	return revision
}

func getBuildDate() string {
	if buildDate != "" {
		return buildDate
	}
	return "unknown"
}

// readBuildInfo returns the short VCS revision and whether the tree was modified.
func readBuildInfo() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return revision, dirty
}
