// Package buildinfo exposes version metadata injected at build time.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/gplotdev/gplot/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/gplotdev/gplot/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/gplotdev/gplot/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds fall back to the placeholder defaults.
package buildinfo

import "fmt"

var (
	// Version is the semantic version, e.g. "v1.2.3".
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the build information as a multi-line summary.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}
