// Package version records the build identity of the tycho CLI.
//
// Release builds stamp the optional fields via ldflags:
//
//	go build -ldflags "\
//	    -X tycho/internal/version.GitCommit=$(git rev-parse --short HEAD) \
//	    -X tycho/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/tycho
package version

import "github.com/fatih/color"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is the short hash of the release commit; empty in dev builds.
	GitCommit = ""

	// BuildDate is the UTC build timestamp in ISO-8601; empty in dev builds.
	BuildDate = ""
)
