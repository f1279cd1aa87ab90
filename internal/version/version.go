package version

import "fmt"

// Version and Commit are overridden via ldflags when building a release.
var (
	Version = "unknown"
	Commit  = "unknown"
)

var FullVersion = fmt.Sprintf("%s (commit %s)", Version, Commit)
