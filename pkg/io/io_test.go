package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/registry"
)

func ref(name, version string) graph.PackageRef {
	return graph.PackageRef{Name: name, Version: version, Registry: registry.Npm}
}

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(ref("app", "1.0.0"))
	b.Insert(ref("a", "2.0.0"), 1)
	b.Insert(ref("ghost", ""), 1)
	b.Insert(ref("b", "3.1.0"), 2)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(b.Resolve(ref("app", "1.0.0"), []graph.PackageRef{ref("a", "2.0.0"), ref("ghost", "")}))
	must(b.Resolve(ref("a", "2.0.0"), []graph.PackageRef{ref("app", "1.0.0"), ref("b", "3.1.0")}))
	must(b.Fail(ref("ghost", ""), &registry.FetchError{
		Kind: registry.ErrNotFound, Package: "ghost", Message: "package not found", Status: 404,
	}))
	return b.Finish()
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleGraph(t), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`"registry": "npm"`,
		`"root": "app@1.0.0"`,
		`"id": "ghost"`,
		`"kind": "not found"`,
		`"status": 404`,
		`"state": "pending"`,
		`"from": "a@2.0.0"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	orig := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if got.Root() != orig.Root() {
		t.Errorf("Root() = %v, want %v", got.Root(), orig.Root())
	}
	if !slices.Equal(got.VisitOrder(), orig.VisitOrder()) {
		t.Errorf("VisitOrder() = %v, want %v", got.VisitOrder(), orig.VisitOrder())
	}
	if !slices.Equal(got.Edges(), orig.Edges()) {
		t.Errorf("Edges() = %v, want %v", got.Edges(), orig.Edges())
	}
	if got.Stats() != orig.Stats() {
		t.Errorf("Stats() = %+v, want %+v", got.Stats(), orig.Stats())
	}

	ghost, _ := got.Lookup(ref("ghost", ""))
	if ghost.Err == nil || !registry.IsNotFound(ghost.Err) || ghost.Err.Status != 404 {
		t.Errorf("ghost error = %v", ghost.Err)
	}
	if !got.IsCycleEdge(ref("a", "2.0.0"), ref("app", "1.0.0")) {
		t.Error("cycle lost in round trip")
	}
	if b, _ := got.Lookup(ref("b", "3.1.0")); b.Depth != 2 || b.State != graph.Pending {
		t.Errorf("b = %+v", b)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no nodes", `{"registry":"npm","root":"a@1","nodes":[],"edges":[]}`},
		{"root not first", `{"registry":"npm","root":"a@1","nodes":[{"id":"b@1","name":"b","version":"1","state":"pending"}]}`},
		{"unknown registry", `{"registry":"pypi","root":"a@1","nodes":[{"id":"a@1","name":"a","version":"1","state":"pending"}]}`},
		{"dangling edge", `{"registry":"npm","root":"a@1","nodes":[{"id":"a@1","name":"a","version":"1","state":"resolved"}],"edges":[{"from":"a@1","to":"b@1"}]}`},
		{"duplicate node", `{"registry":"npm","root":"a@1","nodes":[{"id":"a@1","name":"a","version":"1","state":"resolved"},{"id":"a@1","name":"a","version":"1","state":"resolved"}]}`},
		{"bad state", `{"registry":"npm","root":"a@1","nodes":[{"id":"a@1","name":"a","version":"1","state":"done"}]}`},
		{"pending with edges", `{"registry":"npm","root":"a@1","nodes":[{"id":"a@1","name":"a","version":"1","state":"pending"}],"edges":[{"from":"a@1","to":"a@1"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ReadJSON() error = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() error = nil, want decode error")
	}
}
