// Package graph holds the resolved dependency graph: packages identified by
// [PackageRef], their fetch outcome, and the dependency edges between them.
//
// # Overview
//
// A [Graph] is directed and may contain both cycles (A→B→A) and diamonds
// (A→B, A→C, B→D, C→D); it is not required to be a tree. Nodes are keyed by
// the full (name, version, registry) triple, so two versions of the same name
// are two distinct nodes.
//
// # Construction
//
// Graphs are assembled through a [Builder], which is the only mutation
// surface. The builder enforces three rules:
//
//   - node creation is idempotent: [Builder.Insert] reports whether the ref
//     was new and never replaces an existing node
//   - each node leaves [Pending] at most once, through [Builder.Resolve] or
//     [Builder.Fail]
//   - a resolved node may only reference refs already present, so the
//     finished graph has no dangling edges
//
// [Builder.Finish] freezes the graph, builds the reverse-edge index and the
// strongly connected components, and returns the read-only [Graph]:
//
//	b := graph.NewBuilder(root)
//	b.Insert(dep, 1)
//	b.Resolve(root, []graph.PackageRef{dep})
//	g := b.Finish()
//
// # Queries
//
// A finished graph is immutable and safe for concurrent readers. Besides
// lookups it answers [Graph.DirectDependents] (reverse edges),
// [Graph.DetectCycles] (Tarjan SCC scan) and [Graph.IsCycleEdge].
//
// # Ordering
//
// [Graph.VisitOrder] is the order in which nodes were inserted. With a
// deterministic builder this makes every traversal, and therefore every
// rendering, reproducible.
package graph
