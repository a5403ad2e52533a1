// Package buildinfo identifies the depviz binary: the version printed by
// --version and the User-Agent sent to package registries.
//
// Release builds stamp the values with the linker:
//
//	go build -ldflags "-X github.com/matzehuels/depviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/depviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/depviz
package buildinfo

import "fmt"

// Project is the homepage registries see in the User-Agent.
const Project = "https://github.com/matzehuels/depviz"

// Stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent is sent with every registry request. crates.io rejects
// requests without one.
func UserAgent() string {
	return fmt.Sprintf("depviz/%s (+%s)", Version, Project)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
