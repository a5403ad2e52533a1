package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/registry"
)

// ErrInvalidDocument is returned for JSON that does not describe a graph.
var ErrInvalidDocument = errors.New("invalid graph document")

// ReadJSON decodes a JSON graph from r.
//
// The first node must be the root. Edges must reference node IDs present in
// the document, and only resolved nodes may have outgoing edges. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidDocument)
	}
	if doc.Nodes[0].ID != doc.Root {
		return nil, fmt.Errorf("%w: first node %q is not the root %q", ErrInvalidDocument, doc.Nodes[0].ID, doc.Root)
	}

	kind, err := registry.ParseKind(doc.Registry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	refs := make(map[string]graph.PackageRef, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if _, dup := refs[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidDocument, n.ID)
		}
		refs[n.ID] = graph.PackageRef{Name: n.Name, Version: n.Version, Registry: kind}
	}

	deps := make(map[string][]graph.PackageRef)
	for _, e := range doc.Edges {
		to, ok := refs[e.To]
		if _, known := refs[e.From]; !known || !ok {
			return nil, fmt.Errorf("%w: edge %s->%s references an unknown node", ErrInvalidDocument, e.From, e.To)
		}
		deps[e.From] = append(deps[e.From], to)
	}

	b := graph.NewBuilder(refs[doc.Root])
	for _, n := range doc.Nodes[1:] {
		b.Insert(refs[n.ID], n.Depth)
	}
	for _, n := range doc.Nodes {
		if err := apply(b, refs[n.ID], n, deps[n.ID]); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	return b.Finish(), nil
}

func apply(b *graph.Builder, ref graph.PackageRef, n node, deps []graph.PackageRef) error {
	switch n.State {
	case graph.Resolved.String():
		return b.Resolve(ref, deps)
	case graph.Failed.String():
		if len(deps) > 0 {
			return fmt.Errorf("%w: failed node has edges", ErrInvalidDocument)
		}
		fe := &registry.FetchError{Package: n.Name}
		if n.Error != nil {
			fe.Kind = parseErrorKind(n.Error.Kind)
			fe.Message = n.Error.Message
			fe.Status = n.Error.Status
		}
		return b.Fail(ref, fe)
	case graph.Pending.String():
		if len(deps) > 0 {
			return fmt.Errorf("%w: pending node has edges", ErrInvalidDocument)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown state %q", ErrInvalidDocument, n.State)
}

func parseErrorKind(s string) registry.ErrorKind {
	for k := registry.ErrNetwork; k <= registry.ErrMissingField; k++ {
		if k.String() == s {
			return k
		}
	}
	return registry.ErrNetwork
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
