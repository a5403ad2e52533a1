package ascii

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/depviz/pkg/graph"
)

const (
	connBranch = "├── "
	connLast   = "└── "
	indentPipe = "│   "
	indentNone = "    "
)

const (
	markCycle     = " (cycle)"
	markShared    = " (shared, see above)"
	markPending   = " (not expanded)"
	markTruncated = " (…)"
)

// Options controls tree rendering.
type Options struct {
	// MaxDepth is the deepest level whose children are drawn. The root is
	// level 0. Zero or negative means unlimited.
	MaxDepth int
}

// Render returns the tree for g as text, one package per line.
func Render(g *graph.Graph, opts Options) string {
	var sb strings.Builder
	_ = Write(&sb, g, opts)
	return sb.String()
}

// Write renders the tree for g to w.
func Write(w io.Writer, g *graph.Graph, opts Options) error {
	t := &tree{
		g:        g,
		opts:     opts,
		w:        bufio.NewWriter(w),
		onPath:   make(map[graph.PackageRef]bool),
		expanded: make(map[graph.PackageRef]bool),
	}
	t.node(g.Root(), "", "", 0)
	return t.w.Flush()
}

type tree struct {
	g    *graph.Graph
	opts Options
	w    *bufio.Writer

	onPath   map[graph.PackageRef]bool // ancestors of the node being drawn
	expanded map[graph.PackageRef]bool // nodes whose children were drawn
}

func (t *tree) node(ref graph.PackageRef, prefix, conn string, depth int) {
	line := prefix + conn + ref.String()
	n, ok := t.g.Lookup(ref)

	switch {
	case !ok || n.State == graph.Pending:
		line += markPending
	case n.State == graph.Failed:
		line += " [error: " + errText(n) + "]"
	case t.onPath[ref]:
		line += markCycle
	case t.expanded[ref]:
		line += markShared
	case t.opts.MaxDepth > 0 && depth >= t.opts.MaxDepth && len(n.Deps) > 0:
		line += markTruncated
	default:
		t.writeLine(line)
		t.expanded[ref] = true
		t.onPath[ref] = true
		childPrefix := prefix + indentFor(conn)
		for i, dep := range n.Deps {
			c := connBranch
			if i == len(n.Deps)-1 {
				c = connLast
			}
			t.node(dep, childPrefix, c, depth+1)
		}
		delete(t.onPath, ref)
		return
	}
	t.writeLine(line)
}

// writeLine ignores errors; bufio.Writer keeps the first one for Flush.
func (t *tree) writeLine(s string) {
	t.w.WriteString(s)
	t.w.WriteByte('\n')
}

func indentFor(conn string) string {
	switch conn {
	case connBranch:
		return indentPipe
	case connLast:
		return indentNone
	}
	return ""
}

func errText(n *graph.Node) string {
	if n.Err == nil {
		return "unknown"
	}
	return n.Err.Detail()
}
