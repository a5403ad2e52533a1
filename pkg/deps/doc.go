// Package deps resolves the transitive dependency graph of a package.
//
// # Overview
//
// [Build] starts from a root package name, asks a [registry.Client] for its
// latest version and walks its dependencies breadth-first, producing a
// [graph.Graph]. The walk is bounded in depth ([Options.MaxDepth]), in size
// ([Options.MaxNodes]) and in parallelism ([Options.Concurrency]).
//
// # Layers
//
// The traversal proceeds one BFS layer at a time:
//
//  1. Every Pending node of the current layer is fetched concurrently by a
//     bounded worker pool. Workers only write their own result slot.
//  2. The coordinator merges the layer: dependency names are sorted, their
//     versions resolved (memoized for the rest of the build), and the graph
//     is updated sequentially in visit order. Versions come from
//     [registry.ConstraintResolver] when the client implements it.
//  3. The next layer starts only after the merge completes.
//
// Because the merge order never depends on network timing, two builds against
// identical registry responses produce the same [graph.Graph.VisitOrder] and
// edge set regardless of the concurrency level.
//
// # Failures
//
// A failed fetch marks that node Failed and the build continues with its
// siblings. Only an unreachable root is fatal ([ErrRootUnreachable]).
// Temporary failures are retried with exponential backoff before giving up.
//
// # Limits and cancellation
//
// Hitting a limit is not an error: nodes past the depth cutoff stay Pending,
// even when their version lookup failed, and [Result.Limits] records which
// limit stopped the walk. [RootOnly] fetches the root and nothing else. When the context
// is cancelled, the layer in flight is abandoned, everything already merged is
// kept, and the partial graph is returned with [Result.Cancelled] set.
//
//	res, err := deps.Build(ctx, npm.NewClient(""), "express", deps.Options{
//	    MaxDepth:    5,
//	    Concurrency: 8,
//	})
//
// [registry.Client]: github.com/matzehuels/depviz/pkg/registry.Client
// [registry.ConstraintResolver]: github.com/matzehuels/depviz/pkg/registry.ConstraintResolver
// [graph.Graph]: github.com/matzehuels/depviz/pkg/graph.Graph
// [graph.Graph.VisitOrder]: github.com/matzehuels/depviz/pkg/graph.Graph.VisitOrder
package deps
