package version

import (
	"fmt"
	"runtime/debug"
)

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/faviconbuilder/internal/version.Version=v1.2.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// CacheSchema identifies the layout of generated assets and cache records.
// Bump it whenever the renderer output changes for identical inputs.
const CacheSchema = "3"

// CacheTag is the version stored in cache records. Records written by a
// different tag are never reused.
func CacheTag() string {
	return fmt.Sprintf("%s+schema.%s", resolved(), CacheSchema)
}

// String returns a human readable version line.
func String() string {
	return fmt.Sprintf("faviconbuilder %s (commit %s, built %s)", resolved(), GitCommit, BuildTime)
}

func resolved() string {
	if Version != "unknown" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
