// Package buildinfo carries version metadata stamped in at link time with
// -ldflags "-X github.com/civicviz/reasons311/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata the way the --version flag prints it.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
