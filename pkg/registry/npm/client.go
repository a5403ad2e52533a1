package npm

import (
	"context"
	"net/url"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/depviz/pkg/buildinfo"
	"github.com/matzehuels/depviz/pkg/registry"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// manifestCacheSize bounds the dependency lists kept from packuments.
const manifestCacheSize = 4096

// Client talks to an npm-compatible registry. It is safe for concurrent use.
//
// A packument carries every published version, so the dependencies of the
// version FetchLatestVersion returns are kept and served to the following
// FetchDependencies call without a second download.
type Client struct {
	*registry.HTTPClient
	baseURL   string
	manifests *lru.Cache[string, []registry.Dependency]
}

// NewClient creates an npm client. An empty baseURL selects [DefaultBaseURL].
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	manifests, _ := lru.New[string, []registry.Dependency](manifestCacheSize)
	return &Client{
		HTTPClient: registry.NewHTTPClient(map[string]string{"User-Agent": buildinfo.UserAgent()}),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		manifests:  manifests,
	}
}

// Kind returns [registry.Npm].
func (c *Client) Kind() registry.Kind { return registry.Npm }

// FetchLatestVersion returns dist-tags.latest for pkg.
func (c *Client) FetchLatestVersion(ctx context.Context, pkg string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	var doc packument
	if err := c.GetJSON(ctx, pkg, c.packageURL(pkg), &doc); err != nil {
		return "", err
	}
	latest := doc.DistTags.Latest
	if latest == "" {
		return "", registry.NewFetchError(registry.ErrMissingField, pkg, nil, "no dist-tags.latest")
	}
	if v, ok := doc.Versions[latest]; ok {
		c.manifests.Add(manifestKey(pkg, latest), v.dependencies())
	}
	return latest, nil
}

// FetchDependencies returns the "dependencies" of pkg@version, sorted by name.
// The npm document stores dependencies as a JSON object, so the registry
// order is not observable; sorting keeps results stable.
func (c *Client) FetchDependencies(ctx context.Context, pkg, version string) ([]registry.Dependency, error) {
	pkg = strings.TrimSpace(pkg)
	if deps, ok := c.manifests.Get(manifestKey(pkg, version)); ok {
		return slices.Clone(deps), nil
	}

	var doc packument
	if err := c.GetJSON(ctx, pkg, c.packageURL(pkg), &doc); err != nil {
		return nil, err
	}
	if doc.Versions == nil {
		return nil, registry.NewFetchError(registry.ErrMissingField, pkg, nil, "no versions")
	}
	v, ok := doc.Versions[version]
	if !ok {
		return nil, registry.NewFetchError(registry.ErrNotFound, pkg, nil, "version %s not published", version)
	}
	return v.dependencies(), nil
}

func (c *Client) packageURL(pkg string) string {
	return c.baseURL + "/" + url.PathEscape(pkg)
}

func manifestKey(pkg, version string) string { return pkg + "@" + version }

// packument is the subset of the npm package document we read.
type packument struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Dependencies map[string]string `json:"dependencies"`
}

func (v versionDetails) dependencies() []registry.Dependency {
	deps := make([]registry.Dependency, 0, len(v.Dependencies))
	for name, constraint := range v.Dependencies {
		deps = append(deps, registry.Dependency{Name: name, Constraint: constraint})
	}
	slices.SortFunc(deps, func(a, b registry.Dependency) int { return strings.Compare(a.Name, b.Name) })
	return deps
}
