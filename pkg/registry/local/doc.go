// Package local implements [registry.Client] over a repository file on disk.
//
// It backs test repository mode: instead of querying a public registry, the
// resolver reads packages from a file that maps package names to their
// dependencies. Two entry shapes are accepted and may be mixed:
//
//	{
//	  "A": ["B", "C"],
//	  "B": {"version": "1.2.0", "dependencies": {"C": "^2"}},
//	  "C": []
//	}
//
// The list form declares dependencies in order with version [DefaultVersion].
// The object form carries a version and either a list or a name→constraint
// map of dependencies (maps are sorted by name).
//
// A dependency the file names but does not declare is a leaf at
// [DefaultVersion]. Only the root must be declared; see [Client.CheckRoot].
//
// Files are decoded by extension: .json (default), .toml, .yaml/.yml.
//
// [registry.Client]: github.com/matzehuels/depviz/pkg/registry.Client
package local
