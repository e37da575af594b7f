// Package transform normalizes a raw synteny graph into a form suitable for
// row-based drawing.
//
// # Overview
//
// Raw graphs can relate any genome to any other. A row diagram can only draw
// edges between neighbouring rows, so [Normalize] rewrites the graph until
// that holds:
//
//   - Same-genome edges are removed.
//   - With more than two genomes, the first genome is repeated as a closing
//     row below the last one. Its genes are cloned (IDs suffixed with
//     synteny.DuplicateSuffix) and every edge that would otherwise wrap from
//     the last rows back to row 0 is re-terminated on the clone.
//
// The wrap closes the circular genome ordering: genome 0 is drawn connecting
// both to genome 1 above and to genome N-1 below.
//
// # Diagnostics
//
// Normalization never fails. Edges referencing unknown nodes are passed
// through untouched and reported as warnings on [Options.Logger]; the
// [Result] counters summarize what happened:
//
//	res := transform.Normalize(g, transform.Options{Logger: logger})
//	logger.Info("normalized",
//	    "duplicates", res.DuplicatesAdded,
//	    "retargeted", res.EdgesRetargeted,
//	    "dropped", res.SameGenomeDropped)
package transform
