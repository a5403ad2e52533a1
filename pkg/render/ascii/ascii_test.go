package ascii

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/registry"
)

func ref(name string) graph.PackageRef {
	return graph.PackageRef{Name: name, Version: "1.0.0", Registry: registry.Npm}
}

// buildGraph resolves every package reachable from root using adj.
// Packages listed in pending are inserted but left unfetched.
func buildGraph(t *testing.T, root string, adj map[string][]string, pending ...string) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(ref(root))
	queue := []string{root}
	depth := map[string]int{root: 0}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if slices.Contains(pending, name) {
			continue
		}
		deps := slices.Sorted(slices.Values(adj[name]))
		refs := make([]graph.PackageRef, len(deps))
		for i, d := range deps {
			refs[i] = ref(d)
			if b.Insert(ref(d), depth[name]+1) {
				depth[d] = depth[name] + 1
				queue = append(queue, d)
			}
		}
		if err := b.Resolve(ref(name), refs); err != nil {
			t.Fatalf("Resolve(%s): %v", name, err)
		}
	}
	return b.Finish()
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func TestRenderSingleNode(t *testing.T) {
	root := graph.PackageRef{Name: "left-pad", Version: "1.3.0", Registry: registry.Npm}
	b := graph.NewBuilder(root)
	if err := b.Resolve(root, nil); err != nil {
		t.Fatal(err)
	}

	if got, want := Render(b.Finish(), Options{}), "left-pad@1.3.0\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		adj     map[string][]string
		pending []string
		opts    Options
		want    string
	}{
		{
			name: "shared",
			adj: map[string][]string{
				"foo": {"baz", "bar"},
				"bar": {"baz"},
			},
			want: lines(
				"foo@1.0.0",
				"├── bar@1.0.0",
				"│   └── baz@1.0.0",
				"└── baz@1.0.0 (shared, see above)",
			),
		},
		{
			name: "cycle",
			adj: map[string][]string{
				"a": {"b"},
				"b": {"a"},
			},
			want: lines(
				"a@1.0.0",
				"└── b@1.0.0",
				"    └── a@1.0.0 (cycle)",
			),
		},
		{
			name: "self loop",
			adj:  map[string][]string{"a": {"a"}},
			want: lines(
				"a@1.0.0",
				"└── a@1.0.0 (cycle)",
			),
		},
		{
			name: "nested indentation",
			adj: map[string][]string{
				"r": {"a", "b"},
				"a": {"c", "d"},
				"b": {"e"},
			},
			want: lines(
				"r@1.0.0",
				"├── a@1.0.0",
				"│   ├── c@1.0.0",
				"│   └── d@1.0.0",
				"└── b@1.0.0",
				"    └── e@1.0.0",
			),
		},
		{
			name:    "not expanded",
			adj:     map[string][]string{"r": {"a"}, "a": {"b"}},
			pending: []string{"b"},
			want: lines(
				"r@1.0.0",
				"└── a@1.0.0",
				"    └── b@1.0.0 (not expanded)",
			),
		},
		{
			name:    "truncated at display depth",
			adj:     map[string][]string{"r": {"a", "z"}, "a": {"b"}},
			pending: []string{"b"},
			opts:    Options{MaxDepth: 1},
			want: lines(
				"r@1.0.0",
				"├── a@1.0.0 (…)",
				"└── z@1.0.0",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, firstKey(tt.adj), tt.adj, tt.pending...)
			if got := Render(g, tt.opts); got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

// firstKey returns the package that no other package depends on, or the
// smallest name when every package has a dependent.
func firstKey(adj map[string][]string) string {
	dependedOn := map[string]bool{}
	for _, deps := range adj {
		for _, d := range deps {
			dependedOn[d] = true
		}
	}
	var roots []string
	for name := range adj {
		if !dependedOn[name] {
			roots = append(roots, name)
		}
	}
	if len(roots) == 0 {
		for name := range adj {
			roots = append(roots, name)
		}
	}
	slices.Sort(roots)
	return roots[0]
}

func TestRenderFailed(t *testing.T) {
	b := graph.NewBuilder(ref("r"))
	b.Insert(ref("x"), 1)
	b.Insert(ref("y"), 1)
	if err := b.Resolve(ref("r"), []graph.PackageRef{ref("x"), ref("y")}); err != nil {
		t.Fatal(err)
	}
	fe := &registry.FetchError{Kind: registry.ErrStatus, Package: "x", Status: 500, Message: "unexpected status 500"}
	if err := b.Fail(ref("x"), fe); err != nil {
		t.Fatal(err)
	}
	if err := b.Resolve(ref("y"), nil); err != nil {
		t.Fatal(err)
	}

	want := lines(
		"r@1.0.0",
		"├── x@1.0.0 [error: http status: unexpected status 500]",
		"└── y@1.0.0",
	)
	if got := Render(b.Finish(), Options{}); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderLinearInEdges(t *testing.T) {
	// A ladder of diamonds has 2^n root-to-leaf paths but only 4n edges.
	adj := map[string][]string{}
	const levels = 16
	for i := range levels {
		top := fmt.Sprintf("n%02d", i)
		l, r := fmt.Sprintf("n%02dl", i), fmt.Sprintf("n%02dr", i)
		next := fmt.Sprintf("n%02d", i+1)
		adj[top] = []string{l, r}
		adj[l] = []string{next}
		adj[r] = []string{next}
	}

	g := buildGraph(t, "n00", adj)
	out := Render(g, Options{})
	if n := strings.Count(out, "\n"); n > g.EdgeCount()+1 {
		t.Errorf("rendered %d lines for %d edges", n, g.EdgeCount())
	}
	if !strings.Contains(out, fmt.Sprintf("n%02d@1.0.0 (shared, see above)", levels)) {
		t.Error("expected shared marker for the bottom package")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteError(t *testing.T) {
	g := buildGraph(t, "a", map[string][]string{"a": nil})
	if err := Write(failingWriter{}, g, Options{}); err == nil {
		t.Error("Write() error = nil, want error")
	}
}
