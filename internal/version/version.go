package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/MrSnakeDoc/linkbridge/internal/version.Version=..."
var (
	Version   = "0.0.1"           // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version() // go version
)

// String is the one-line build summary printed by the version command.
func String() string {
	return fmt.Sprintf("linkbridge %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
