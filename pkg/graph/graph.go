package graph

import (
	"errors"
	"slices"

	"github.com/matzehuels/depviz/pkg/registry"
)

var (
	// ErrUnknownNode is returned by [Builder] mutations that reference a ref
	// that was never inserted.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotPending is returned when a node that already left the Pending
	// state is resolved or failed a second time.
	ErrNotPending = errors.New("node is not pending")

	// ErrDanglingDependency is returned by [Builder.Resolve] when a dependency
	// ref has not been inserted first.
	ErrDanglingDependency = errors.New("dependency not in graph")
)

// Graph is a finished, read-only dependency graph.
// It is safe for concurrent use by multiple readers.
type Graph struct {
	root       PackageRef
	nodes      map[PackageRef]*Node
	order      []PackageRef
	dependents map[PackageRef][]PackageRef
	edgeCount  int

	scc    map[PackageRef]int // component id per node
	cyclic map[int]bool       // component ids that form a cycle
	cycles []Cycle
}

// Root returns the ref the graph was built from.
func (g *Graph) Root() PackageRef { return g.root }

// Lookup returns the node for ref.
func (g *Graph) Lookup(ref PackageRef) (*Node, bool) {
	n, ok := g.nodes[ref]
	return n, ok
}

// Nodes returns all nodes in visit order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, ref := range g.order {
		out[i] = g.nodes[ref]
	}
	return out
}

// VisitOrder returns node refs in discovery order. The root is always first.
func (g *Graph) VisitOrder() []PackageRef { return slices.Clone(g.order) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of dependency edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Edges returns every edge, grouped by source in visit order and by target in
// the source's dependency order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for _, ref := range g.order {
		for _, dep := range g.nodes[ref].Deps {
			edges = append(edges, Edge{From: ref, To: dep})
		}
	}
	return edges
}

// DirectDependents returns the nodes that declare ref as a direct dependency,
// sorted with [Compare]. The result must not be modified.
func (g *Graph) DirectDependents(ref PackageRef) []PackageRef {
	return g.dependents[ref]
}

// DetectCycles returns every cycle in the graph: strongly connected components
// with more than one member, and self-loops. Cycles are ordered by their
// first member.
func (g *Graph) DetectCycles() []Cycle {
	out := make([]Cycle, len(g.cycles))
	for i, c := range g.cycles {
		out[i] = slices.Clone(c)
	}
	return out
}

// IsCycleEdge reports whether from→to lies on a cycle, i.e. both endpoints
// belong to the same cyclic component.
func (g *Graph) IsCycleEdge(from, to PackageRef) bool {
	a, ok := g.scc[from]
	if !ok {
		return false
	}
	b, ok := g.scc[to]
	return ok && a == b && g.cyclic[a]
}

// Stats counts nodes by state.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes), Edges: g.edgeCount}
	for _, n := range g.nodes {
		switch n.State {
		case Resolved:
			s.Resolved++
		case Failed:
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}

// =============================================================================
// Builder
// =============================================================================

// Builder assembles a Graph. It is owned by a single goroutine and is not
// safe for concurrent use.
type Builder struct {
	g *Graph
}

// NewBuilder starts a graph whose root is inserted as Pending at depth 0.
func NewBuilder(root PackageRef) *Builder {
	b := &Builder{g: &Graph{
		root:  root,
		nodes: make(map[PackageRef]*Node),
	}}
	b.Insert(root, 0)
	return b
}

// Insert adds ref as a Pending node discovered at depth. It reports false and
// leaves the graph unchanged when ref is already present.
func (b *Builder) Insert(ref PackageRef, depth int) bool {
	b.checkOpen()
	if _, ok := b.g.nodes[ref]; ok {
		return false
	}
	b.g.nodes[ref] = &Node{Ref: ref, State: Pending, Depth: depth}
	b.g.order = append(b.g.order, ref)
	return true
}

// Resolve records the direct dependencies of ref and marks it Resolved.
// Every dependency must already be present.
func (b *Builder) Resolve(ref PackageRef, deps []PackageRef) error {
	n, err := b.pending(ref)
	if err != nil {
		return err
	}
	for _, d := range deps {
		if _, ok := b.g.nodes[d]; !ok {
			return ErrDanglingDependency
		}
	}
	n.Deps = slices.Clone(deps)
	n.State = Resolved
	b.g.edgeCount += len(deps)
	return nil
}

// Fail marks ref as Failed with err.
func (b *Builder) Fail(ref PackageRef, err *registry.FetchError) error {
	n, perr := b.pending(ref)
	if perr != nil {
		return perr
	}
	n.State = Failed
	n.Err = err
	return nil
}

// Lookup returns the node for ref while the graph is under construction.
func (b *Builder) Lookup(ref PackageRef) (*Node, bool) {
	n, ok := b.g.nodes[ref]
	return n, ok
}

// Len returns the number of nodes inserted so far.
func (b *Builder) Len() int { return len(b.g.nodes) }

// Pending returns the Pending nodes discovered at depth, in visit order.
func (b *Builder) Pending(depth int) []PackageRef {
	var refs []PackageRef
	for _, ref := range b.g.order {
		if n := b.g.nodes[ref]; n.Depth == depth && n.State == Pending {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Finish freezes the graph and returns it. The Builder must not be used
// afterwards.
func (b *Builder) Finish() *Graph {
	b.checkOpen()
	g := b.g
	b.g = nil

	g.dependents = make(map[PackageRef][]PackageRef)
	for _, ref := range g.order {
		for _, dep := range g.nodes[ref].Deps {
			if !slices.Contains(g.dependents[dep], ref) {
				g.dependents[dep] = append(g.dependents[dep], ref)
			}
		}
	}
	for _, refs := range g.dependents {
		slices.SortFunc(refs, Compare)
	}

	g.findComponents()
	return g
}

func (b *Builder) pending(ref PackageRef) (*Node, error) {
	b.checkOpen()
	n, ok := b.g.nodes[ref]
	if !ok {
		return nil, ErrUnknownNode
	}
	if n.State != Pending {
		return nil, ErrNotPending
	}
	return n, nil
}

func (b *Builder) checkOpen() {
	if b.g == nil {
		panic("graph: Builder used after Finish")
	}
}
