package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/registry"
)

func ref(name string) graph.PackageRef {
	return graph.PackageRef{Name: name, Version: "1.0.0", Registry: registry.Npm}
}

func TestFormatCycleSelfLoop(t *testing.T) {
	b := graph.NewBuilder(ref("a"))
	if err := b.Resolve(ref("a"), []graph.PackageRef{ref("a")}); err != nil {
		t.Fatal(err)
	}
	g := b.Finish()

	cycles := g.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("DetectCycles() = %v, want one cycle", cycles)
	}
	if got, want := formatCycle(g, cycles[0]), "a@1.0.0 → a@1.0.0"; got != want {
		t.Errorf("formatCycle() = %q, want %q", got, want)
	}
}

func TestPrintStats(t *testing.T) {
	b := graph.NewBuilder(ref("a"))
	b.Insert(ref("b"), 1)
	b.Insert(ref("c"), 1)
	if err := b.Resolve(ref("a"), []graph.PackageRef{ref("b"), ref("c")}); err != nil {
		t.Fatal(err)
	}
	if err := b.Fail(ref("b"), &registry.FetchError{Kind: registry.ErrNotFound, Package: "b", Message: "not found"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	printStats(&buf, b.Finish(), deps.Limits{NodesReached: true})

	out := buf.String()
	for _, want := range []string{"3 nodes", "2 edges", "1 not expanded", "1 failed", "node limit reached"} {
		if !strings.Contains(out, want) {
			t.Errorf("printStats output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "depth limit") {
		t.Errorf("unexpected depth warning in %q", out)
	}
}
