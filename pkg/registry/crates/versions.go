package crates

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/matzehuels/depviz/pkg/registry"
)

// FetchMatchingVersion returns the newest non-yanked version of crate that
// satisfies the Cargo requirement req. An empty or "*" requirement is the
// crate's latest stable version.
func (c *Client) FetchMatchingVersion(ctx context.Context, crate, req string) (string, error) {
	req = strings.TrimSpace(req)
	if req == "" || req == "*" {
		return c.FetchLatestVersion(ctx, crate)
	}
	constraint, err := parseRequirement(req)
	if err != nil {
		return "", registry.NewFetchError(registry.ErrDecode, crate, err, "requirement %q", req)
	}

	var data versionsResponse
	if err := c.GetJSON(ctx, crate, fmt.Sprintf("%s/crates/%s/versions", c.baseURL, url.PathEscape(crate)), &data); err != nil {
		return "", err
	}
	if data.Versions == nil {
		return "", registry.NewFetchError(registry.ErrMissingField, crate, nil, "no versions field")
	}

	var best *semver.Version
	for _, v := range data.Versions {
		if v.Yanked {
			continue
		}
		sv, err := semver.NewVersion(v.Num)
		if err != nil {
			continue
		}
		if constraint.Check(sv) && (best == nil || sv.GreaterThan(best)) {
			best = sv
		}
	}
	if best == nil {
		return "", registry.NewFetchError(registry.ErrNotFound, crate, nil, "no version matches %q", req)
	}
	return best.Original(), nil
}

// parseRequirement converts a Cargo version requirement into a semver
// constraint. Cargo reads a bare version ("1.2") as a caret requirement.
func parseRequirement(req string) (*semver.Constraints, error) {
	parts := strings.Split(req, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && p[0] >= '0' && p[0] <= '9' {
			p = "^" + p
		}
		parts[i] = p
	}
	return semver.NewConstraint(strings.Join(parts, ", "))
}

type versionsResponse struct {
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}
