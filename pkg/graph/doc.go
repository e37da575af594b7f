// Package graph provides serialization types for synteny graphs and diagrams.
//
// This package defines the canonical wire format for Syntower's graph data,
// used for JSON files, API requests and responses, storage, and cache keys.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Diagram]: Serialization types (this package)
//   - pkg/core/synteny.Graph: Engine input
//   - pkg/core/diagram.Diagram: Engine output
//
// Use [ToSynteny]/[FromSynteny] and [ExportDiagram] to convert between them.
//
// # Graph Serialization
//
// Graphs use the field names of the parsing backend:
//
//	{
//	  "genomes": ["G1", "G2"],
//	  "nodes": [
//	    {"id": "a", "genome_name": "G1", "protein_name": "dnaA",
//	     "direction": "plus", "rel_position": 0, "is_present": true,
//	     "domain1_start": 12, "domain1_end": 80}
//	  ],
//	  "links": [
//	    {"source": "a", "target": "b", "score": 87.5, "is_reciprocal": true},
//	    {"source": "a", "target": "c", "link_type": "dotted_color"}
//	  ],
//	  "domain_name": "ALL"
//	}
//
// A link with link_type is a category link; any other link is a score link.
// A document may also be an array of such graphs, one per domain; [Select]
// picks one.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json", "")  // File → Graph
//	graph.WriteGraphFile(g, "output.json")         // Graph → File
//	data, _ := graph.MarshalGraph(g)               // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)        // []byte → Graph
//
// # Diagram Serialization
//
// [ExportDiagram] flattens a built diagram into nodes with rows, normalized
// links, row labels, and per-node colors and component roots.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
