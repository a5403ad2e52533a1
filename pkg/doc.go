// Package pkg provides the libraries behind depviz, a dependency graph
// visualizer for crates.io and npm.
//
// # Architecture
//
// The data flow through depviz:
//
//	Registry (crates.io, npm, local file)
//	         ↓
//	    [deps] package (layered concurrent resolution)
//	         ↓
//	    [graph] package (immutable graph, cycles, stats)
//	         ↓
//	    [render/ascii], [render/nodelink], [io]
//	         ↓
//	    ASCII tree / PNG, SVG, JPG, DOT / JSON
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/depviz/pkg/deps"
//	    "github.com/matzehuels/depviz/pkg/registry/crates"
//	    "github.com/matzehuels/depviz/pkg/render/ascii"
//	)
//
//	res, err := deps.Build(context.Background(), crates.NewClient(""), "serde", deps.Options{MaxDepth: 3})
//	if err != nil {
//	    return err
//	}
//	return ascii.Write(os.Stdout, res.Graph, ascii.Options{})
//
// # Main Packages
//
//   - [registry]: the Client interface, fetch errors and the npm, crates and
//     local clients
//   - [deps]: the graph builder with depth and node limits
//   - [graph]: PackageRef, Node, Graph and the single-writer Builder
//   - [render/ascii]: box-drawing tree with cycle and shared markers
//   - [render/nodelink]: DOT generation and Graphviz rendering
//   - [io]: JSON export and import of resolved graphs
//   - [config]: run configuration in JSON, TOML or YAML
//   - [errors]: coded errors and process exit codes
//   - [observability]: build, render and cache hooks
//   - [httputil]: retry with exponential backoff
//
// [registry]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/registry
// [deps]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/deps
// [graph]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/graph
// [render/ascii]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/render/ascii
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/depviz/pkg/httputil
package pkg
