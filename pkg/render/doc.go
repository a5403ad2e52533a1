// Package render groups the dependency graph renderers.
//
// Renderers only read a finished [graph.Graph], so several may run
// concurrently over the same graph.
//
//   - [ascii]: indented text tree for terminals
//   - [nodelink]: Graphviz node-link diagrams (PNG, SVG, JPEG, DOT)
//
// [graph.Graph]: github.com/matzehuels/depviz/pkg/graph.Graph
// [ascii]: github.com/matzehuels/depviz/pkg/render/ascii
// [nodelink]: github.com/matzehuels/depviz/pkg/render/nodelink
package render
