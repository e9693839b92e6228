// Package version provides version information for the application.
package version

import "fmt"

// Version information, populated via ldflags by release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the version, with build information for release builds.
func String() string {
	if Commit == "none" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
