package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depviz/pkg/graph"
)

type document struct {
	Registry string `json:"registry"`
	Root     string `json:"root"`
	Nodes    []node `json:"nodes"`
	Edges    []edge `json:"edges"`
}

type node struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Version string     `json:"version,omitempty"`
	State   string     `json:"state"`
	Depth   int        `json:"depth"`
	Error   *nodeError `json:"error,omitempty"`
}

type nodeError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	root := g.Root()
	out := document{
		Registry: root.Registry.String(),
		Root:     root.String(),
		Nodes:    make([]node, 0, g.NodeCount()),
		Edges:    make([]edge, 0, g.EdgeCount()),
	}

	for _, ref := range g.VisitOrder() {
		n, _ := g.Lookup(ref)
		nd := node{
			ID:      ref.String(),
			Name:    ref.Name,
			Version: ref.Version,
			State:   n.State.String(),
			Depth:   n.Depth,
		}
		if n.Err != nil {
			nd.Error = &nodeError{Kind: n.Err.Kind.String(), Message: n.Err.Message, Status: n.Err.Status}
		}
		out.Nodes = append(out.Nodes, nd)
		for _, dep := range n.Deps {
			out.Edges = append(out.Edges, edge{From: ref.String(), To: dep.String()})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
