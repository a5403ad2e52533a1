// Package crates implements [registry.Client] for crates.io.
//
// The latest version is the crate's max_stable_version (max_version when no
// stable release exists). Dependencies are read from the version's
// dependencies endpoint; only "normal", non-optional dependencies are kept,
// so dev- and build-dependencies never appear in the graph.
//
// crates.io rejects requests without a User-Agent, so every [Client] sends one.
//
// [registry.Client]: github.com/matzehuels/depviz/pkg/registry.Client
package crates
