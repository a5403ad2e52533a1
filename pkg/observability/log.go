package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes build, render and HTTP events to a logger at debug level.
// The CLI installs it for --verbose runs.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ BuildHooks  = LogHooks{}
	_ RenderHooks = LogHooks{}
	_ HTTPHooks   = LogHooks{}
)

func (h LogHooks) OnBuildStart(_ context.Context, buildID, registry, pkg string) {
	h.Logger.Debug("build start", "build", short(buildID), "registry", registry, "package", pkg)
}

func (h LogHooks) OnFetch(_ context.Context, buildID, pkg string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch", "build", short(buildID), "package", pkg, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.Logger.Debug("fetch", "build", short(buildID), "package", pkg, "took", d.Round(time.Millisecond))
}

func (LogHooks) OnLayerComplete(context.Context, string, int, int, int) {}

func (h LogHooks) OnBuildComplete(_ context.Context, buildID string, nodes int, d time.Duration, err error) {
	h.Logger.Debug("build complete", "build", short(buildID), "nodes", nodes, "took", d.Round(time.Millisecond), "err", err)
}

func (h LogHooks) OnRenderStart(_ context.Context, renderer string, nodes int) {
	h.Logger.Debug("render start", "renderer", renderer, "nodes", nodes)
}

func (h LogHooks) OnRenderComplete(_ context.Context, renderer string, size int, d time.Duration, err error) {
	h.Logger.Debug("render complete", "renderer", renderer, "bytes", size, "took", d.Round(time.Millisecond), "err", err)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// CacheCounter counts cache hits and misses. It is safe for concurrent use.
type CacheCounter struct {
	hits, misses atomic.Int64
}

var _ CacheHooks = (*CacheCounter)(nil)

func (c *CacheCounter) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *CacheCounter) OnCacheMiss(context.Context, string) { c.misses.Add(1) }

// Counts returns the hits and misses recorded so far.
func (c *CacheCounter) Counts() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
