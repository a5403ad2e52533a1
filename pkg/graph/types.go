package graph

import (
	"cmp"
	"fmt"

	"github.com/matzehuels/depviz/pkg/registry"
)

// PackageRef identifies one resolved package. It is comparable and used
// directly as a map key; equality covers all three fields.
type PackageRef struct {
	Name     string        // Package name as known to the registry
	Version  string        // Resolved version, empty when it could not be determined
	Registry registry.Kind // Registry the package was resolved from
}

// String renders the ref as "name@version", or just "name" when the version
// is unknown.
func (r PackageRef) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "@" + r.Version
}

// Compare orders refs by name, then version, then registry.
func Compare(a, b PackageRef) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Version, b.Version); c != 0 {
		return c
	}
	return cmp.Compare(a.Registry, b.Registry)
}

// FetchState is the resolution outcome of a node.
type FetchState int

const (
	// Pending nodes were discovered but never fetched, either because the
	// build stopped at a depth or node limit or because it was cancelled.
	Pending FetchState = iota
	// Resolved nodes have their direct dependencies recorded.
	Resolved
	// Failed nodes could not be fetched; Node.Err holds the reason.
	Failed
)

func (s FetchState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("FetchState(%d)", int(s))
}

// Node is one package in the graph.
//
// Nodes returned by [Graph] accessors are shared with the graph and must not
// be modified.
type Node struct {
	Ref   PackageRef
	Deps  []PackageRef         // Direct dependencies, sorted by name (Resolved only)
	State FetchState
	Err   *registry.FetchError // Set when State is Failed
	Depth int                  // BFS layer at which the node was discovered (root = 0)
}

// Edge is a "depends on" relation between two nodes.
type Edge struct {
	From PackageRef
	To   PackageRef
}

// Cycle is a strongly connected component with more than one member, or a
// single node that depends on itself. Members are sorted with [Compare].
type Cycle []PackageRef

// Stats summarizes a graph.
type Stats struct {
	Nodes    int
	Edges    int
	Resolved int
	Failed   int
	Pending  int
}
