// Package npm implements [registry.Client] for the npm registry.
//
// The latest version is read from the package document's dist-tags.latest, and
// dependencies come from that version's "dependencies" map. Semver ranges are
// reported as constraints but never solved: every dependency resolves to its
// own latest version.
//
// [registry.Client]: github.com/matzehuels/depviz/pkg/registry.Client
package npm
