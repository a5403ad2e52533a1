// Package registry defines the capability set every package registry backend
// implements, plus the HTTP plumbing shared by the network-backed ones.
//
// # Overview
//
// A registry answers two questions about a package:
//
//   - [Client.FetchLatestVersion]: which version is current?
//   - [Client.FetchDependencies]: what does that version declare as direct
//     dependencies?
//
// Implementations live in subpackages:
//
//   - [npm]: registry.npmjs.org
//   - [crates]: crates.io
//   - [local]: a repository file on disk (test repository mode)
//
// # Errors
//
// Every failure surfaces as a [*FetchError] carrying an [ErrorKind]. Clients
// never retry on their own; retry policy belongs to the caller, which can ask
// [FetchError.Temporary] whether another attempt may help.
//
// # Versions
//
// Clients that implement [ConstraintResolver] (crates.io) resolve each
// dependency to the newest published version matching its declared
// requirement. That is a single-range match, not version solving. Other
// clients (npm, local) follow the registry's "latest" and report the
// requirement as-is.
//
// [npm]: github.com/matzehuels/depviz/pkg/registry/npm
// [crates]: github.com/matzehuels/depviz/pkg/registry/crates
// [local]: github.com/matzehuels/depviz/pkg/registry/local
package registry
