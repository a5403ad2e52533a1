package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depviz/pkg/registry"
)

// DefaultVersion is assigned to packages whose entry carries no version.
const DefaultVersion = "0.0.0"

// Package is one entry of a local repository.
type Package struct {
	Version      string
	Dependencies []registry.Dependency
}

// Client serves packages from an in-memory repository. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	packages map[string]Package
}

// New creates a Client over packages. Entries without a version get
// [DefaultVersion].
func New(packages map[string]Package) *Client {
	m := make(map[string]Package, len(packages))
	for name, p := range packages {
		if p.Version == "" {
			p.Version = DefaultVersion
		}
		m[name] = p
	}
	return &Client{packages: m}
}

// Load reads a repository file, choosing the decoder by extension.
func Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test repository: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes repository data. ext selects the format (".json", ".toml",
// ".yaml", ".yml"); anything else is treated as JSON.
func Parse(data []byte, ext string) (*Client, error) {
	raw := map[string]any{}
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode test repository: %w", err)
	}

	packages := make(map[string]Package, len(raw))
	for name, entry := range raw {
		p, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", name, err)
		}
		packages[name] = p
	}
	return New(packages), nil
}

func parseEntry(entry any) (Package, error) {
	switch v := entry.(type) {
	case nil:
		return Package{}, nil
	case []any:
		deps, err := parseDeps(v)
		return Package{Dependencies: deps}, err
	case map[string]any:
		var p Package
		if ver, ok := v["version"]; ok {
			s, ok := ver.(string)
			if !ok {
				return Package{}, fmt.Errorf("version must be a string")
			}
			p.Version = s
		}
		deps, err := parseDeps(v["dependencies"])
		p.Dependencies = deps
		return p, err
	}
	return Package{}, fmt.Errorf("entry must be a list or an object, got %T", entry)
}

func parseDeps(v any) ([]registry.Dependency, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case []any:
		deps := make([]registry.Dependency, 0, len(d))
		for _, item := range d {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("dependency names must be strings, got %T", item)
			}
			deps = append(deps, registry.Dependency{Name: name, Constraint: "*"})
		}
		return deps, nil
	case map[string]any:
		deps := make([]registry.Dependency, 0, len(d))
		for _, name := range slices.Sorted(maps.Keys(d)) {
			constraint, ok := d[name].(string)
			if !ok {
				return nil, fmt.Errorf("constraint for %q must be a string", name)
			}
			deps = append(deps, registry.Dependency{Name: name, Constraint: constraint})
		}
		return deps, nil
	}
	return nil, fmt.Errorf("dependencies must be a list or an object, got %T", v)
}

// Kind returns [registry.Local].
func (c *Client) Kind() registry.Kind { return registry.Local }

// Len returns the number of packages in the repository.
func (c *Client) Len() int { return len(c.packages) }

// Has reports whether the repository contains name.
func (c *Client) Has(name string) bool {
	_, ok := c.packages[name]
	return ok
}

// FetchLatestVersion returns the version recorded for name. A name the
// repository does not declare is a leaf at [DefaultVersion]; use [Client.Has]
// to reject an undeclared root.
func (c *Client) FetchLatestVersion(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", registry.NewFetchError(registry.ErrNetwork, name, err, "cancelled")
	}
	p, ok := c.packages[name]
	if !ok {
		return DefaultVersion, nil
	}
	return p.Version, nil
}

// FetchDependencies returns the dependencies recorded for name@version.
// Undeclared names have none.
func (c *Client) FetchDependencies(ctx context.Context, name, version string) ([]registry.Dependency, error) {
	if err := ctx.Err(); err != nil {
		return nil, registry.NewFetchError(registry.ErrNetwork, name, err, "cancelled")
	}
	p, ok := c.packages[name]
	if !ok {
		if version != DefaultVersion {
			return nil, registry.NewFetchError(registry.ErrNotFound, name, nil, "version %s not in test repository", version)
		}
		return nil, nil
	}
	if p.Version != version {
		return nil, registry.NewFetchError(registry.ErrNotFound, name, nil, "version %s not in test repository", version)
	}
	return slices.Clone(p.Dependencies), nil
}

// CheckRoot returns a not-found error when name is not declared.
func (c *Client) CheckRoot(name string) error {
	if !c.Has(name) {
		return registry.NewFetchError(registry.ErrNotFound, name, nil, "not in test repository")
	}
	return nil
}
