package crates

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/depviz/pkg/buildinfo"
	"github.com/matzehuels/depviz/pkg/registry"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// Client provides access to the crates.io API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*registry.HTTPClient
	baseURL string
}

// NewClient creates a crates.io client. An empty baseURL selects [DefaultBaseURL].
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := map[string]string{
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		HTTPClient: registry.NewHTTPClient(headers),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Kind returns [registry.CratesIO].
func (c *Client) Kind() registry.Kind { return registry.CratesIO }

// FetchLatestVersion returns the newest stable version of crate.
func (c *Client) FetchLatestVersion(ctx context.Context, crate string) (string, error) {
	var data crateResponse
	if err := c.GetJSON(ctx, crate, fmt.Sprintf("%s/crates/%s", c.baseURL, url.PathEscape(crate)), &data); err != nil {
		return "", err
	}
	v := data.Crate.MaxStableVersion
	if v == "" {
		v = data.Crate.MaxVersion
	}
	if v == "" {
		return "", registry.NewFetchError(registry.ErrMissingField, crate, nil, "no max_version")
	}
	return v, nil
}

// FetchDependencies returns the normal, non-optional dependencies of
// crate@version in the order crates.io lists them.
func (c *Client) FetchDependencies(ctx context.Context, crate, version string) ([]registry.Dependency, error) {
	u := fmt.Sprintf("%s/crates/%s/%s/dependencies", c.baseURL, url.PathEscape(crate), url.PathEscape(version))

	var data depsResponse
	if err := c.GetJSON(ctx, crate, u, &data); err != nil {
		return nil, err
	}
	if data.Dependencies == nil {
		return nil, registry.NewFetchError(registry.ErrMissingField, crate, nil, "no dependencies field")
	}

	var deps []registry.Dependency
	for _, d := range data.Dependencies {
		if d.Kind == "normal" && !d.Optional {
			deps = append(deps, registry.Dependency{Name: d.CrateID, Constraint: d.Req})
		}
	}
	return deps, nil
}

type crateResponse struct {
	Crate struct {
		Name             string `json:"name"`
		MaxVersion       string `json:"max_version"`
		MaxStableVersion string `json:"max_stable_version"`
	} `json:"crate"`
}

type depsResponse struct {
	Dependencies []struct {
		CrateID  string `json:"crate_id"`
		Req      string `json:"req"`
		Kind     string `json:"kind"`
		Optional bool   `json:"optional"`
	} `json:"dependencies"`
}
