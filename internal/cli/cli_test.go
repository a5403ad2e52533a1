package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depviz/pkg/errors"
	pkgio "github.com/matzehuels/depviz/pkg/io"
)

const diamondRepo = `{
	"app":   ["left", "right"],
	"left":  ["util"],
	"right": ["util"],
	"util":  []
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(ctx context.Context, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	c := New(&out, &errOut, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestTreeCommand(t *testing.T) {
	repo := writeFile(t, t.TempDir(), "repo.json", diamondRepo)

	out, _, err := execute(context.Background(), "tree", "npm", "app", "--test-repo", repo)
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}

	want := strings.Join([]string{
		"app@0.0.0",
		"├── left@0.0.0",
		"│   └── util@0.0.0",
		"└── right@0.0.0",
		"    └── util@0.0.0 (shared, see above)",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("tree output =\n%s\nwant\n%s", out, want)
	}
}

func TestTreeCommandDepthLimit(t *testing.T) {
	repo := writeFile(t, t.TempDir(), "repo.json", diamondRepo)

	out, errOut, err := execute(context.Background(), "tree", "npm", "app", "--test-repo", repo, "--max-depth", "1")
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	if !strings.Contains(out, "left@0.0.0 (…)") {
		t.Errorf("tree output lacks truncation marker:\n%s", out)
	}
	if !strings.Contains(errOut, "depth limit reached") {
		t.Errorf("stderr lacks depth warning:\n%s", errOut)
	}
}

func TestTreeCommandRootOnly(t *testing.T) {
	repo := writeFile(t, t.TempDir(), "repo.json", diamondRepo)

	out, _, err := execute(context.Background(), "tree", "npm", "app", "--test-repo", repo, "--max-depth", "0")
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}

	want := strings.Join([]string{
		"app@0.0.0",
		"├── left@0.0.0 (not expanded)",
		"└── right@0.0.0 (not expanded)",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("tree output =\n%s\nwant\n%s", out, want)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "repo.json", diamondRepo)
	image := filepath.Join(dir, "app.dot")
	export := filepath.Join(dir, "app.json")

	cfg, err := json.Marshal(map[string]any{
		"package_name":   "app",
		"repo_url":       "https://registry.npmjs.org",
		"test_repo_mode": true,
		"test_repo_path": "repo.json",
		"output_image":   image,
		"ascii_tree":     false,
	})
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "depviz.json", string(cfg))

	out, _, err := execute(context.Background(), "run", "--config", path, "--json", export)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty without ascii_tree", out)
	}

	dot, err := os.ReadFile(image)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"digraph G {", `"app@0.0.0" -> "left@0.0.0"`, `"right@0.0.0" -> "util@0.0.0"`} {
		if !strings.Contains(string(dot), want) {
			t.Errorf("DOT output missing %q", want)
		}
	}

	g, err := pkgio.ImportJSON(export)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("exported graph has %d nodes, %d edges; want 4, 4", g.NodeCount(), g.EdgeCount())
	}

	viewOut, _, err := execute(context.Background(), "view", export)
	if err != nil {
		t.Fatalf("view error = %v", err)
	}
	if !strings.Contains(viewOut, "util@0.0.0 (shared, see above)") {
		t.Errorf("view output =\n%s", viewOut)
	}
}

func TestCyclesCommand(t *testing.T) {
	dir := t.TempDir()
	cyclic := writeFile(t, dir, "cyclic.json", `{"a": ["b"], "b": ["c"], "c": ["a", "d"], "d": []}`)
	acyclic := writeFile(t, dir, "acyclic.json", diamondRepo)

	tests := []struct {
		name string
		repo string
		pkg  string
		want string
	}{
		{"cycle", cyclic, "a", "a@0.0.0 → b@0.0.0 → c@0.0.0 → a@0.0.0\n"},
		{"none", acyclic, "app", "no cycles\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(context.Background(), "cycles", "npm", tt.pkg, "--test-repo", tt.repo)
			if err != nil {
				t.Fatalf("cycles error = %v", err)
			}
			if out != tt.want {
				t.Errorf("cycles output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	repo := writeFile(t, dir, "repo.json", diamondRepo)
	badConfig := writeFile(t, dir, "bad.json", `{"package_name": "app"}`)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		args []string
		want int
	}{
		{"unknown registry", nil, []string{"tree", "pypi", "requests"}, errors.ExitConfig},
		{"invalid npm name", nil, []string{"tree", "npm", "Not Valid"}, errors.ExitConfig},
		{"missing args", nil, []string{"tree", "npm"}, errors.ExitConfig},
		{"unknown flag", nil, []string{"tree", "--nope", "npm", "app"}, errors.ExitConfig},
		{"image without output", nil, []string{"image", "npm", "app", "--test-repo", repo}, errors.ExitConfig},
		{"unsupported image format", nil, []string{"image", "npm", "app", "-o", "app.bmp", "--test-repo", repo}, errors.ExitConfig},
		{"missing config", nil, []string{"run", "--config", filepath.Join(dir, "missing.json")}, errors.ExitConfig},
		{"incomplete config", nil, []string{"run", "--config", badConfig}, errors.ExitConfig},
		{"root unreachable", nil, []string{"tree", "npm", "ghost", "--test-repo", repo}, errors.ExitUnreachable},
		{"interrupted", cancelled, []string{"tree", "npm", "app", "--test-repo", repo}, errors.ExitInterrupted},
		{"ok", nil, []string{"tree", "npm", "app", "--test-repo", repo}, errors.ExitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			_, _, err := execute(ctx, tt.args...)
			if got := errors.ExitCode(err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}
