package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/errors"
	"github.com/matzehuels/depviz/pkg/observability"
	"github.com/matzehuels/depviz/pkg/registry"
	"github.com/matzehuels/depviz/pkg/registry/crates"
	"github.com/matzehuels/depviz/pkg/registry/local"
	"github.com/matzehuels/depviz/pkg/registry/npm"
)

// buildFlags holds the resolver flags shared by tree, image and cycles.
type buildFlags struct {
	maxDepth    int
	maxNodes    int
	concurrency int
	timeout     time.Duration
	testRepo    string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", deps.DefaultMaxDepth, "maximum dependency depth to fetch (0 fetches only the root)")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", deps.DefaultMaxNodes, "soft cap on the number of packages")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", deps.DefaultConcurrency, "parallel registry requests")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "stop resolving after this long and render what was found (0 = no limit)")
	cmd.Flags().StringVar(&f.testRepo, "test-repo", "", "resolve against a local repository file instead of the registry")
}

func (f *buildFlags) options() deps.Options {
	return deps.Options{
		MaxDepth:    deps.FetchDepth(f.maxDepth),
		MaxNodes:    f.maxNodes,
		Concurrency: f.concurrency,
	}
}

// buildRequest describes one graph build.
type buildRequest struct {
	kind     registry.Kind
	pkg      string
	testRepo string
	opts     deps.Options
	timeout  time.Duration
}

// parseTarget validates the registry and package arguments of a command.
func parseTarget(registryArg, pkg string) (registry.Kind, error) {
	kind, err := registry.ParseKind(registryArg)
	if err != nil || kind == registry.Local {
		return registry.Unknown, errors.New(errors.ErrCodeInvalidInput, "unknown registry %q (want crates or npm)", registryArg)
	}
	if err := registry.ValidateName(kind, pkg); err != nil {
		return registry.Unknown, err
	}
	return kind, nil
}

// newClient returns the registry client for kind, or a local repository
// client when testRepo is set.
func newClient(kind registry.Kind, testRepo string) (registry.Client, error) {
	if testRepo != "" {
		c, err := local.Load(testRepo)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "test repository %s", testRepo)
		}
		return c, nil
	}
	switch kind {
	case registry.CratesIO:
		return crates.NewClient(""), nil
	case registry.Npm:
		return npm.NewClient(""), nil
	}
	return nil, errors.New(errors.ErrCodeConfigInvalid, "unsupported registry %s", kind)
}

// build resolves the dependency graph described by req.
//
// A timeout stops the traversal and returns the partial graph with a
// warning. Cancellation of ctx itself (an interrupt) is reported as an error
// so the process exits accordingly.
func (c *CLI) build(ctx context.Context, req buildRequest) (*deps.Result, error) {
	client, err := newClient(req.kind, req.testRepo)
	if err != nil {
		return nil, err
	}
	// Test repositories resolve undeclared names as leaves, so the root is
	// checked here.
	if repo, ok := client.(*local.Client); ok {
		if err := repo.CheckRoot(req.pkg); err != nil {
			return nil, buildError(ctx, req.pkg, fmt.Errorf("%w: %s: %w", deps.ErrRootUnreachable, req.pkg, err))
		}
	}

	buildCtx := ctx
	if req.timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, req.timeout)
		defer cancel()
	}

	opts := req.opts
	if !c.interactive {
		opts.Logger = loggerFromContext(ctx)
	}
	builder := deps.NewBuilder(client, opts)
	run := func() (*deps.Result, error) { return builder.Build(buildCtx, req.pkg) }

	memo := &observability.CacheCounter{}
	prevCache := observability.Cache()
	observability.SetCacheHooks(memo)
	defer observability.SetCacheHooks(prevCache)

	prog := newProgress(c.Logger)
	var res *deps.Result
	if c.interactive {
		res, err = c.runWithProgress(req.pkg, run)
	} else {
		res, err = run()
	}
	hits, misses := memo.Counts()
	c.Logger.Debug("version memo", "hits", hits, "misses", misses)
	if err != nil {
		return nil, buildError(ctx, req.pkg, err)
	}

	if res.Cancelled {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeCancelled, ctx.Err(), "resolving %s", req.pkg)
		}
		printWarning(c.err, "timed out after %s; rendering the partial graph", req.timeout)
	}
	if c.interactive {
		printSuccess(c.err, "Resolved %s", StyleTitle.Render(res.Graph.Root().String()))
	} else {
		prog.done("Resolved " + res.Graph.Root().String())
	}
	printStats(c.err, res.Graph, res.Limits)
	return res, nil
}

func buildError(ctx context.Context, pkg string, err error) error {
	switch {
	case ctx.Err() != nil:
		return errors.Wrap(errors.ErrCodeCancelled, ctx.Err(), "resolving %s", pkg)
	case stderrors.Is(err, deps.ErrEmptyName):
		return errors.Wrap(errors.ErrCodeInvalidPackage, err, "resolving")
	case stderrors.Is(err, deps.ErrRootUnreachable):
		return errors.Wrap(errors.ErrCodeRootUnreachable, err, "resolving %s", pkg)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "resolving %s", pkg)
}
