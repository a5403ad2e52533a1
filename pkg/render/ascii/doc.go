// Package ascii renders dependency graphs as indented text trees.
//
// The graph is unfolded depth-first from the root, children in the order the
// graph stores them (ascending by name). A package reachable along several
// paths is expanded once; later occurrences are a single line marked
// "(shared, see above)", so the output grows with the number of edges rather
// than the number of paths. A package that is already an ancestor on the
// current path is marked "(cycle)".
//
//	express@4.21.2
//	├── accepts@1.3.8
//	│   ├── mime-types@2.1.35
//	│   │   └── mime-db@1.52.0
//	│   └── negotiator@0.6.3
//	└── body-parser@1.20.3
//	    └── ...
//
// Failed packages carry an inline "[error: ...]" marker, packages the build
// never fetched are "(not expanded)", and nodes cut off by [Options.MaxDepth]
// end in "(…)".
package ascii
