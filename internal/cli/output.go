package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/depviz/pkg/errors"
	"github.com/matzehuels/depviz/pkg/graph"
	pkgio "github.com/matzehuels/depviz/pkg/io"
	"github.com/matzehuels/depviz/pkg/observability"
	"github.com/matzehuels/depviz/pkg/render/ascii"
	"github.com/matzehuels/depviz/pkg/render/nodelink"
)

// outputs selects what to produce from a resolved graph.
type outputs struct {
	ascii        bool
	displayDepth int
	image        string
	detailed     bool
	json         string
}

// writeOutputs renders g to every requested target. File outputs are
// written concurrently; the ASCII tree goes to c.out after they finish.
// Every failure is reported, joined into one RENDER_FAILED error.
func (c *CLI) writeOutputs(ctx context.Context, g *graph.Graph, o outputs) error {
	var (
		mu      sync.Mutex
		written []string
		errs    []error
	)
	record := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
			return
		}
		written = append(written, path)
	}

	var eg errgroup.Group
	if o.image != "" {
		eg.Go(func() error {
			record(o.image, c.writeImage(ctx, g, o.image, o.detailed))
			return nil
		})
	}
	if o.json != "" {
		eg.Go(func() error {
			record(o.json, c.writeJSON(ctx, g, o.json))
			return nil
		})
	}
	_ = eg.Wait()

	if o.ascii {
		if err := c.writeTree(ctx, g, o.displayDepth); err != nil {
			errs = append(errs, err)
		}
	}

	for _, path := range written {
		printFile(c.err, path)
	}
	if len(errs) > 0 {
		return errors.Wrap(errors.ErrCodeRenderFailed, stderrors.Join(errs...), "write output")
	}
	return nil
}

// checkImagePath rejects image paths whose extension names no supported
// format, before any network work is done.
func checkImagePath(path string) error {
	if path == "" {
		return nil
	}
	if _, err := nodelink.FormatFromPath(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "output %s", path)
	}
	return nil
}

func (c *CLI) writeTree(ctx context.Context, g *graph.Graph, depth int) error {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "ascii", g.NodeCount())
	start := time.Now()

	cw := &countingWriter{w: c.out}
	err := ascii.Write(cw, g, ascii.Options{MaxDepth: depth})
	hooks.OnRenderComplete(ctx, "ascii", cw.n, time.Since(start), err)
	return err
}

func (c *CLI) writeImage(ctx context.Context, g *graph.Graph, path string, detailed bool) error {
	format, err := nodelink.FormatFromPath(path)
	if err != nil {
		return err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "nodelink", g.NodeCount())
	start := time.Now()

	if c.interactive && format != nodelink.FormatDOT {
		s := newSpinner(ctx, c.err, "Rendering "+path)
		s.Start()
		defer s.Stop()
	}
	data, err := nodelink.Render(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: detailed}), format)
	if err == nil {
		err = os.WriteFile(path, data, 0o644)
	}
	hooks.OnRenderComplete(ctx, "nodelink", len(data), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "image %s", path)
	}
	loggerFromContext(ctx).Debug("image written", "path", path, "format", format, "bytes", len(data))
	return nil
}

func (c *CLI) writeJSON(ctx context.Context, g *graph.Graph, path string) error {
	if err := pkgio.ExportJSON(g, path); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "graph %s", path)
	}
	loggerFromContext(ctx).Debug("graph exported", "path", path)
	return nil
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
