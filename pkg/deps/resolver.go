package deps

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/httputil"
	"github.com/matzehuels/depviz/pkg/observability"
	"github.com/matzehuels/depviz/pkg/registry"
)

var (
	// ErrRootUnreachable is returned when the root package's version cannot
	// be resolved. No graph is produced in that case.
	ErrRootUnreachable = errors.New("root package unreachable")

	// ErrEmptyName is returned when the root package name is blank.
	ErrEmptyName = errors.New("empty package name")
)

// Builder resolves dependency graphs against a single registry client.
// A Builder may be reused; each Build call gets its own version memo.
type Builder struct {
	client registry.Client
	opts   Options
}

// NewBuilder returns a Builder that fetches through client.
func NewBuilder(client registry.Client, opts Options) *Builder {
	return &Builder{client: client, opts: opts.WithDefaults()}
}

// Build is shorthand for NewBuilder(client, opts).Build(ctx, root).
func Build(ctx context.Context, client registry.Client, root string, opts Options) (*Result, error) {
	return NewBuilder(client, opts).Build(ctx, root)
}

// Build walks the dependency graph of root. A non-nil error means no graph
// could be started; per-package failures are recorded on the nodes instead.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, ErrEmptyName
	}

	id := uuid.NewString()
	run := &build{
		Builder: b,
		id:      id,
		logger:  b.opts.Logger.With("build", id[:8]),
		hooks:   observability.Build(),
		start:   time.Now(),
	}
	cache, err := lru.New[string, versionResult](max(2*b.opts.MaxNodes, 256))
	if err != nil {
		return nil, err
	}
	run.versions = cache

	run.hooks.OnBuildStart(ctx, id, b.client.Kind().String(), root)
	res, err := run.run(ctx, root)
	nodes := 0
	if res != nil {
		nodes = res.Graph.NodeCount()
	}
	run.hooks.OnBuildComplete(ctx, id, nodes, time.Since(run.start), err)
	return res, err
}

type versionResult struct {
	version string
	err     *registry.FetchError
}

type fetchResult struct {
	deps []registry.Dependency
	err  *registry.FetchError
}

// build holds the state of one Build call. Only the coordinating goroutine
// touches the graph builder.
type build struct {
	*Builder
	id       string
	logger   *log.Logger
	hooks    observability.BuildHooks
	start    time.Time
	versions *lru.Cache[string, versionResult]
}

func (r *build) run(ctx context.Context, rootName string) (*Result, error) {
	rootDep := registry.Dependency{Name: rootName}
	vr := r.resolveVersions(ctx, []registry.Dependency{rootDep})[r.versionKey(rootDep)]
	if vr.err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRootUnreachable, rootName, vr.err)
	}

	root := graph.PackageRef{Name: rootName, Version: vr.version, Registry: r.client.Kind()}
	gb := graph.NewBuilder(root)
	res := &Result{BuildID: r.id}
	maxDepth := r.opts.depthLimit()
	r.logger.Info("resolving", "root", root, "registry", r.client.Kind(), "max_depth", maxDepth)

	for depth := 0; depth <= maxDepth; depth++ {
		layer := gb.Pending(depth)
		if len(layer) == 0 {
			break
		}
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		fetched := r.fetchLayer(ctx, layer)
		versions := r.resolveVersions(ctx, dependencies(fetched))
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}

		applied := r.merge(gb, layer, fetched, versions, depth, res)
		r.hooks.OnLayerComplete(ctx, r.id, depth, applied, gb.Len())
		r.logger.Debug("layer complete", "depth", depth, "fetched", applied, "nodes", gb.Len(),
			"elapsed", time.Since(r.start).Round(time.Millisecond))

		if res.Limits.NodesReached {
			break
		}
		if gb.Len() >= r.opts.MaxNodes && depth < maxDepth && len(gb.Pending(depth+1)) > 0 {
			res.Limits.NodesReached = true
			r.logger.Warn("node limit reached", "max_nodes", r.opts.MaxNodes, "depth", depth)
			break
		}
	}

	if len(gb.Pending(maxDepth+1)) > 0 {
		res.Limits.DepthReached = true
	}

	res.Graph = gb.Finish()
	res.Duration = time.Since(r.start)

	stats := res.Graph.Stats()
	r.logger.Info("resolved", "nodes", stats.Nodes, "edges", stats.Edges, "failed", stats.Failed,
		"pending", stats.Pending, "cancelled", res.Cancelled, "elapsed", res.Duration.Round(time.Millisecond))
	return res, nil
}

// fetchLayer fetches the dependency lists of layer concurrently. Slot i of
// the result belongs to layer[i].
func (r *build) fetchLayer(ctx context.Context, layer []graph.PackageRef) []fetchResult {
	results := make([]fetchResult, len(layer))

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i, ref := range layer {
		g.Go(func() error {
			start := time.Now()
			var deps []registry.Dependency
			err := r.retry(ctx, func() error {
				var err error
				deps, err = r.client.FetchDependencies(ctx, ref.Name, ref.Version)
				return err
			})
			r.hooks.OnFetch(ctx, r.id, ref.String(), time.Since(start), err)
			if err != nil {
				results[i].err = registry.AsFetchError(err, ref.Name)
				return nil
			}
			results[i].deps = deps
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// resolveVersions returns the version of each dependency keyed by
// versionKey, consulting the per-build memo before the registry.
func (r *build) resolveVersions(ctx context.Context, deps []registry.Dependency) map[string]versionResult {
	out := make(map[string]versionResult, len(deps))
	var missing []registry.Dependency
	for _, dep := range deps {
		key := r.versionKey(dep)
		if _, ok := out[key]; ok {
			continue
		}
		if vr, ok := r.versions.Get(key); ok {
			observability.Cache().OnCacheHit(ctx, "version")
			out[key] = vr
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "version")
		out[key] = versionResult{}
		missing = append(missing, dep)
	}

	matcher, matches := r.client.(registry.ConstraintResolver)
	fetched := make([]versionResult, len(missing))
	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i, dep := range missing {
		g.Go(func() error {
			var v string
			err := r.retry(ctx, func() error {
				var err error
				if matches && dep.Constraint != "" {
					v, err = matcher.FetchMatchingVersion(ctx, dep.Name, dep.Constraint)
				} else {
					v, err = r.client.FetchLatestVersion(ctx, dep.Name)
				}
				return err
			})
			if err != nil {
				fetched[i].err = registry.AsFetchError(err, dep.Name)
				return nil
			}
			fetched[i].version = v
			return nil
		})
	}
	_ = g.Wait()

	for i, dep := range missing {
		key := r.versionKey(dep)
		out[key] = fetched[i]
		// Cancellation is not a property of the package.
		if ctx.Err() == nil {
			r.versions.Add(key, fetched[i])
		}
	}
	return out
}

// versionKey identifies a version lookup. Registries that match
// requirements resolve each (name, requirement) pair separately.
func (r *build) versionKey(dep registry.Dependency) string {
	if _, ok := r.client.(registry.ConstraintResolver); ok && dep.Constraint != "" {
		return dep.Name + " " + dep.Constraint
	}
	return dep.Name
}

// merge applies a fetched layer to the graph in visit order and returns the
// number of nodes it settled.
func (r *build) merge(gb *graph.Builder, layer []graph.PackageRef, fetched []fetchResult,
	versions map[string]versionResult, depth int, res *Result) int {
	applied := 0
	for i, ref := range layer {
		if i > 0 && gb.Len() >= r.opts.MaxNodes {
			res.Limits.NodesReached = true
			r.logger.Warn("node limit reached", "max_nodes", r.opts.MaxNodes, "unexpanded", len(layer)-i)
			break
		}
		applied++

		fr := fetched[i]
		if fr.err != nil {
			r.logger.Warn("fetch failed", "package", ref, "err", fr.err)
			mustApply(gb.Fail(ref, fr.err))
			continue
		}

		deps := normalize(fr.deps)
		refs := make([]graph.PackageRef, 0, len(deps))
		for _, dep := range deps {
			vr := versions[r.versionKey(dep)]
			child := graph.PackageRef{Name: dep.Name, Version: vr.version, Registry: r.client.Kind()}
			// Children past the depth limit stay pending even when their
			// version lookup failed.
			if gb.Insert(child, depth+1) && vr.err != nil && depth < r.opts.depthLimit() {
				r.logger.Warn("version lookup failed", "package", dep.Name, "err", vr.err)
				mustApply(gb.Fail(child, vr.err))
			}
			refs = append(refs, child)
		}
		mustApply(gb.Resolve(ref, refs))
		r.logger.Debug("resolved", "package", ref, "deps", len(refs), "depth", depth)
	}
	return applied
}

func (r *build) retry(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, r.opts.Retries, r.opts.RetryDelay, fn)
}

// dependencies lists the distinct dependencies across a fetched layer.
func dependencies(fetched []fetchResult) []registry.Dependency {
	var all []registry.Dependency
	for _, fr := range fetched {
		all = append(all, normalize(fr.deps)...)
	}
	return all
}

// normalize returns the dependencies with distinct, non-empty names in
// ascending name order. The first declaration of a name wins.
func normalize(deps []registry.Dependency) []registry.Dependency {
	seen := make(map[string]bool, len(deps))
	out := make([]registry.Dependency, 0, len(deps))
	for _, d := range deps {
		d.Name = strings.TrimSpace(d.Name)
		d.Constraint = strings.TrimSpace(d.Constraint)
		if d.Name == "" || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b registry.Dependency) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func mustApply(err error) {
	if err != nil {
		panic(fmt.Sprintf("deps: inconsistent graph update: %v", err))
	}
}
