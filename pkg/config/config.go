// Package config loads and validates the depviz run configuration.
//
// A configuration names the root package, the registry to query (by URL),
// where to write the rendered image and whether to print the ASCII tree:
//
//	{
//	  "package_name": "serde",
//	  "repo_url": "https://crates.io",
//	  "test_repo_mode": false,
//	  "output_image": "serde.png",
//	  "ascii_tree": true,
//	  "max_depth": 3
//	}
//
// An omitted max_depth uses the resolver default; 0 resolves the root alone.
// JSON is the default format; files ending in .toml, .yaml or .yml are
// decoded accordingly. Every error returned by [Load] and [Config.Validate]
// carries the CONFIG_INVALID code.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/errors"
	"github.com/matzehuels/depviz/pkg/registry"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "depviz.json"

// requiredKeys must be present in every configuration file, even when false
// or empty is the intended value.
var requiredKeys = []string{"package_name", "repo_url", "test_repo_mode", "output_image", "ascii_tree"}

// Config is one depviz run.
type Config struct {
	PackageName     string `json:"package_name" toml:"package_name" yaml:"package_name"`
	RepoURL         string `json:"repo_url" toml:"repo_url" yaml:"repo_url"`
	TestRepoMode    bool   `json:"test_repo_mode" toml:"test_repo_mode" yaml:"test_repo_mode"`
	TestRepoPath    string `json:"test_repo_path,omitempty" toml:"test_repo_path" yaml:"test_repo_path,omitempty"`
	OutputImage     string `json:"output_image" toml:"output_image" yaml:"output_image"`
	ASCIITree       bool   `json:"ascii_tree" toml:"ascii_tree" yaml:"ascii_tree"`
	MaxDepth        *int   `json:"max_depth,omitempty" toml:"max_depth" yaml:"max_depth,omitempty"`
	MaxNodes        int    `json:"max_nodes,omitempty" toml:"max_nodes" yaml:"max_nodes,omitempty"`
	Concurrency     int    `json:"concurrency,omitempty" toml:"concurrency" yaml:"concurrency,omitempty"`
	MaxDisplayDepth int    `json:"max_display_depth,omitempty" toml:"max_display_depth" yaml:"max_display_depth,omitempty"`
	Timeout         string `json:"timeout,omitempty" toml:"timeout" yaml:"timeout,omitempty"`
}

// Load reads, decodes and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "read config %s", path)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if cfg.TestRepoPath != "" && !filepath.IsAbs(cfg.TestRepoPath) {
		cfg.TestRepoPath = filepath.Join(filepath.Dir(path), cfg.TestRepoPath)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data. ext selects the format
// (".toml", ".yaml", ".yml"); anything else is treated as JSON.
func Parse(data []byte, ext string) (*Config, error) {
	var (
		cfg     Config
		present func(key string) bool
	)

	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse TOML config")
		}
		present = func(key string) bool { return md.IsDefined(key) }
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse YAML config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse YAML config")
		}
		present = keyIn(raw)
	default:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse JSON config")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse JSON config")
		}
		present = keyIn(raw)
	}

	var missing []string
	for _, key := range requiredKeys {
		if !present(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "missing required field(s): %s", strings.Join(missing, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func keyIn(m map[string]any) func(string) bool {
	return func(key string) bool {
		_, ok := m[key]
		return ok
	}
}

// Validate checks field values. It does not check key presence, so it can
// also be used on configurations assembled from flags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PackageName) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "package_name must not be empty")
	}
	kind, err := c.Registry()
	if err != nil {
		return err
	}
	if c.TestRepoMode {
		if strings.TrimSpace(c.TestRepoPath) == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "test_repo_path is required when test_repo_mode is true")
		}
		// Test repositories are not bound by the registry's naming rules.
		kind = registry.Local
	}
	if err := registry.ValidateName(kind, c.PackageName); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, err, "package_name")
	}
	if !c.ASCIITree && strings.TrimSpace(c.OutputImage) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "nothing to do: output_image is empty and ascii_tree is false")
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"max_depth", c.maxDepth()},
		{"max_nodes", c.MaxNodes},
		{"concurrency", c.Concurrency},
		{"max_display_depth", c.MaxDisplayDepth},
	} {
		if f.value < 0 {
			return errors.New(errors.ErrCodeConfigInvalid, "%s must not be negative, got %d", f.name, f.value)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// Registry returns the registry selected by RepoURL.
func (c *Config) Registry() (registry.Kind, error) {
	kind, err := registry.KindFromURL(c.RepoURL)
	if err != nil {
		return registry.Unknown, errors.Wrap(errors.ErrCodeConfigInvalid, err, "repo_url")
	}
	return kind, nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeConfigInvalid, "timeout %q is not a valid duration", c.Timeout)
	}
	return d, nil
}

// BuildOptions returns the resolver options for this configuration. Zero
// values fall back to the resolver defaults, except an explicit max_depth of
// 0, which fetches only the root.
func (c *Config) BuildOptions() deps.Options {
	depth := 0
	if c.MaxDepth != nil {
		depth = deps.FetchDepth(*c.MaxDepth)
	}
	return deps.Options{
		MaxDepth:    depth,
		MaxNodes:    c.MaxNodes,
		Concurrency: c.Concurrency,
	}.WithDefaults()
}

func (c *Config) maxDepth() int {
	if c.MaxDepth == nil {
		return 0
	}
	return *c.MaxDepth
}

// DisplayDepth is the ASCII tree depth: MaxDisplayDepth when set, otherwise
// the resolver depth so that unexpanded packages show as truncated.
func (c *Config) DisplayDepth() int {
	if c.MaxDisplayDepth > 0 {
		return c.MaxDisplayDepth
	}
	return c.BuildOptions().MaxDepth
}

// String renders the effective configuration on one line, for logging.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "package_name=%s repo_url=%s test_repo_mode=%t", c.PackageName, c.RepoURL, c.TestRepoMode)
	if c.TestRepoMode {
		fmt.Fprintf(&sb, " test_repo_path=%s", c.TestRepoPath)
	}
	opts := c.BuildOptions()
	fmt.Fprintf(&sb, " output_image=%s ascii_tree=%t max_depth=%d max_nodes=%d concurrency=%d",
		c.OutputImage, c.ASCIITree, opts.MaxDepth, opts.MaxNodes, opts.Concurrency)
	return sb.String()
}
