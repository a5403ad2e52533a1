// Package nodelink renders dependency graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] maps a [graph.Graph] onto Graphviz DOT source: one box per package,
// one arrow per dependency edge. [Render] lays the DOT out and draws it with
// Graphviz, in-process.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG)
//
// # Styling
//
// Node fill encodes fetch state: the root is light green, resolved packages
// light blue, failed packages red (the error is in the tooltip), and packages
// that were never fetched have a dashed grey outline. Edges on a dependency
// cycle are bold red; edges into a package with several dependents (diamond
// edges) are dashed blue.
//
// # Formats
//
// PNG, SVG and JPEG are produced by Graphviz. [FormatDOT] returns the DOT
// source unchanged, for processing with external Graphviz tools.
// [FormatFromPath] picks the format from an output file name.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which bundles Graphviz,
// so no system installation is required.
//
// [graph.Graph]: github.com/matzehuels/depviz/pkg/graph.Graph
package nodelink
