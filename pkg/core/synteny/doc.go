// Package synteny defines the multi-genome relation graph that syntower turns
// into a row diagram.
//
// # Overview
//
// A synteny diagram has one horizontal row per genome. Genes are drawn as
// directional arrows along a shared position axis, and edges connect genes of
// adjacent rows to show similarity or consistency relations. This package
// holds the raw input model; the transformations that make it drawable live in
// the transform, component and palette subpackages and are orchestrated by
// pkg/core/diagram.
//
// # Rows
//
// The order of [Graph.Genomes] defines the row index of every genome: row 0 is
// the first genome. When a graph has more than two genomes, the nodes of row 0
// are duplicated into a synthesized closing row placed at index
// len(Genomes). [Node.Duplicate] marks those clones and [Row] resolves the row
// of any node.
//
// # Edges
//
// [Edge] is a tagged variant. A score edge ([EdgeKindScore]) carries a
// similarity score and a reciprocity flag; a category edge
// ([EdgeKindCategory]) carries a [Category] computed from per-domain
// consistency. Both share the Source/Target pair, which keeps the input
// orientation even though connectivity treats edges as undirected.
//
//	e := synteny.ScoreEdge("a1", "b1", 87.5, true)
//	if e.Strong() {
//	    // reciprocal or color-bearing: groups its endpoints
//	}
package synteny
