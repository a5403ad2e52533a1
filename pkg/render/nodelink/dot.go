package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/depviz/pkg/graph"
)

const (
	colorRoot     = "lightgreen"
	colorResolved = "lightblue"
	colorFailed   = "#e74c3c"
	colorPending  = "grey50"
	colorCycle    = "red"
	colorDiamond  = "blue"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the discovery depth and fetch state to node labels.
	// When false, labels show only name and version.
	Detailed bool
}

// ToDOT converts g to Graphviz DOT source. Nodes and edges are emitted in
// visit order, so equal graphs produce identical output.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"grey40\", arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := g.Root()
	order := g.VisitOrder()
	for _, ref := range order {
		n, _ := g.Lookup(ref)
		attrs := nodeAttrs(n, ref == root, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(ref), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, ref := range order {
		n, _ := g.Lookup(ref)
		for _, dep := range n.Deps {
			attrs := edgeAttrs(g, ref, dep)
			if len(attrs) == 0 {
				fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(ref), nodeID(dep))
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(ref), nodeID(dep), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(ref graph.PackageRef) string { return ref.String() }

func fmtLabel(n *graph.Node, detailed bool) string {
	version := n.Ref.Version
	if version == "" {
		version = "?"
	}
	label := n.Ref.Name + "\n" + version
	if detailed {
		label += fmt.Sprintf("\ndepth: %d\n%s", n.Depth, n.State)
	}
	return label
}

func nodeAttrs(n *graph.Node, isRoot, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch {
	case n.State == graph.Failed:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorFailed), "fontcolor=white")
		if n.Err != nil {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Err.Detail()))
		}
	case isRoot:
		attrs = append(attrs, "fillcolor="+colorRoot, "penwidth=2")
	case n.State == graph.Pending:
		attrs = append(attrs, "style=\"rounded,dashed\"", "color="+colorPending, "fontcolor="+colorPending,
			"tooltip=\"not expanded\"")
	default:
		attrs = append(attrs, "fillcolor="+colorResolved)
	}
	return attrs
}

func edgeAttrs(g *graph.Graph, from, to graph.PackageRef) []string {
	switch {
	case g.IsCycleEdge(from, to):
		return []string{"color=" + colorCycle, "style=bold", "penwidth=2"}
	case len(g.DirectDependents(to)) > 1:
		return []string{"color=" + colorDiamond, "style=dashed"}
	}
	return nil
}
