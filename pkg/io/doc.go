// Package io provides JSON import and export for dependency graphs.
//
// # Overview
//
// This package serializes a resolved [graph.Graph] to a simple JSON document
// so results can be inspected by other tools or rendered again later without
// contacting a registry.
//
// # JSON Format
//
//	{
//	  "registry": "npm",
//	  "root": "express@4.21.2",
//	  "nodes": [
//	    {"id": "express@4.21.2", "name": "express", "version": "4.21.2", "state": "resolved", "depth": 0},
//	    {"id": "accepts@1.3.8", "name": "accepts", "version": "1.3.8", "state": "resolved", "depth": 1},
//	    {"id": "ghost", "name": "ghost", "state": "failed", "depth": 1,
//	     "error": {"kind": "not found", "message": "package not found", "status": 404}}
//	  ],
//	  "edges": [
//	    {"from": "express@4.21.2", "to": "accepts@1.3.8"}
//	  ]
//	}
//
// Nodes are listed in visit order and edges grouped by source in that order,
// so exporting the same graph twice yields identical bytes.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild a graph from that document. Nodes that
// were Resolved get their edges back, Failed nodes their error, and cycle
// information is recomputed. A document referencing unknown node IDs is
// rejected.
//
//	g, err := io.ImportJSON("deps.json")
//
// [graph.Graph]: github.com/matzehuels/depviz/pkg/graph.Graph
package io
