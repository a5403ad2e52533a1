package deps

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depviz/pkg/graph"
)

const (
	DefaultMaxDepth    = 5                      // Default maximum dependency depth
	DefaultMaxNodes    = 500                    // Default soft cap on graph size
	DefaultConcurrency = 8                      // Default number of concurrent fetches
	DefaultRetries     = 2                      // Default attempts per registry request
	DefaultRetryDelay  = 500 * time.Millisecond // Default initial backoff
)

// RootOnly as Options.MaxDepth fetches the root alone; its dependencies are
// listed but not expanded.
const RootOnly = -1

// Options configures a build.
type Options struct {
	MaxDepth    int           // Deepest layer whose nodes are fetched (default: 5, see RootOnly)
	MaxNodes    int           // Stop starting new layers at this many nodes (default: 500)
	Concurrency int           // Concurrent registry requests (default: 8)
	Retries     int           // Attempts per request, including the first (default: 2)
	RetryDelay  time.Duration // Initial backoff between attempts (default: 500ms)
	Logger      *log.Logger   // Progress and failure logging (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Retries <= 0 {
		opts.Retries = DefaultRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

func (o Options) depthLimit() int { return max(o.MaxDepth, 0) }

// FetchDepth maps a user-facing depth, where 0 means the root alone, to an
// Options.MaxDepth value.
func FetchDepth(depth int) int {
	if depth == 0 {
		return RootOnly
	}
	return depth
}

// Limits reports which soft limits stopped the traversal.
type Limits struct {
	DepthReached bool // Pending nodes remain beyond MaxDepth
	NodesReached bool // Traversal stopped at MaxNodes with work remaining
}

// Any reports whether any limit was hit.
func (l Limits) Any() bool { return l.DepthReached || l.NodesReached }

// Result is the outcome of a build. Graph is never nil.
type Result struct {
	Graph     *graph.Graph
	Limits    Limits
	Cancelled bool          // The context ended before the walk finished
	BuildID   string        // Correlates log lines and hooks of one build
	Duration  time.Duration // Wall time of the build
}
