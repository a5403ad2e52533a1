package registry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies a package registry.
type Kind int

const (
	// Unknown is the zero value and never a valid registry.
	Unknown Kind = iota
	// CratesIO is the Rust crate registry at crates.io.
	CratesIO
	// Npm is the Node package registry at registry.npmjs.org.
	Npm
	// Local is a repository file on disk, used in test repository mode.
	Local
)

var kindNames = map[Kind]string{
	CratesIO: "crates",
	Npm:      "npm",
	Local:    "local",
}

// String returns the short registry name ("crates", "npm", "local").
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a registry name to its Kind. Common aliases such as
// "crates.io", "cargo" and "rust" are accepted for crates.io.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crates", "crates.io", "cargo", "rust":
		return CratesIO, nil
	case "npm", "node", "javascript":
		return Npm, nil
	case "local", "test":
		return Local, nil
	}
	return Unknown, fmt.Errorf("unknown registry %q (available: crates, npm)", s)
}

// KindFromURL returns the registry served at rawURL. The URL must be an
// absolute http(s) URL whose host is crates.io or registry.npmjs.org (or a
// subdomain).
func KindFromURL(rawURL string) (Kind, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Unknown, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Unknown, fmt.Errorf("%q is not an absolute URL", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Unknown, fmt.Errorf("%q must use http or https", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case hostMatches(host, "crates.io"):
		return CratesIO, nil
	case hostMatches(host, "registry.npmjs.org"):
		return Npm, nil
	}
	return Unknown, fmt.Errorf("host %q is not a supported registry (crates.io, registry.npmjs.org)", host)
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Dependency is one declared direct dependency of a package version.
type Dependency struct {
	Name       string // Dependency package name
	Constraint string // Version requirement as declared (e.g. "^1.2.0")
}

// Client fetches package metadata from one registry.
//
// Implementations must be safe for concurrent use: the resolver calls them from
// a pool of goroutines. They never retry; the resolver does.
type Client interface {
	// Kind reports which registry this client talks to.
	Kind() Kind

	// FetchLatestVersion returns the version the registry currently reports as
	// latest for name.
	FetchLatestVersion(ctx context.Context, name string) (string, error)

	// FetchDependencies returns the direct dependencies declared by
	// name@version, in registry order.
	FetchDependencies(ctx context.Context, name, version string) ([]Dependency, error)
}

// ConstraintResolver is implemented by clients whose registry resolves a
// dependency's declared requirement to a concrete version. The resolver
// uses it for dependencies; clients without it get FetchLatestVersion.
type ConstraintResolver interface {
	// FetchMatchingVersion returns the newest published version of name
	// that satisfies constraint.
	FetchMatchingVersion(ctx context.Context, name, constraint string) (string, error)
}
