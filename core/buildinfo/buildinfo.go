package buildinfo

import "fmt"

// These variables are intended to be set via -ldflags at build time:
//
//	-X 'github.com/m3rciful/joingate/core/buildinfo.Version=v1.0.0'
//	-X 'github.com/m3rciful/joingate/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/joingate/core/buildinfo.Date=2026-10-14T12:00:00Z'
var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)

// String renders the build info on one line for the version command.
func String() string {
	date := Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("joingate %s (commit %s, built %s)", Version, Commit, date)
}
