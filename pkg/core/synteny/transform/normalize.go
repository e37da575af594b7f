package transform

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// Options configures [Normalize].
type Options struct {
	// Logger receives the non-fatal diagnostics: a warning per edge whose
	// endpoint genome cannot be resolved and a debug line per dropped
	// same-genome edge. Nil discards them.
	Logger *log.Logger
}

// Result is the normalized graph plus metrics about what changed.
type Result struct {
	// Nodes holds the originals in input order followed by the duplicates,
	// in the order of the originals they were cloned from.
	Nodes []synteny.Node

	// Edges holds the surviving edges in input order.
	Edges []synteny.Edge

	// DupOf maps an original row-0 node ID to its duplicate ID.
	DupOf map[string]string

	// OriginalOf is the inverse of DupOf.
	OriginalOf map[string]string

	DuplicatesAdded   int
	EdgesRetargeted   int
	SameGenomeDropped int
	Dangling          int
}

// Normalize makes g drawable as a row diagram.
//
// When g has more than two genomes, every node of the first genome is cloned
// into a closing row below the last genome. Each edge is then handled in turn:
//
//   - an edge with an endpoint whose genome cannot be resolved is kept
//     unmodified and logged;
//   - an edge between two nodes of the same genome is dropped;
//   - an edge spanning more than one row, with duplication active, is
//     re-terminated on the duplicate of its first-genome endpoint. The source
//     is checked before the target, so at most one endpoint moves.
//
// g is not modified. A nil graph or a graph without genomes yields an empty
// result.
func Normalize(g *synteny.Graph, opts Options) *Result {
	res := &Result{
		Nodes:      []synteny.Node{},
		Edges:      []synteny.Edge{},
		DupOf:      map[string]string{},
		OriginalOf: map[string]string{},
	}
	if g.Empty() {
		return res
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	genomes := g.Genomes
	first := genomes[0]
	duplicate := synteny.Duplicates(len(genomes))

	res.Nodes = make([]synteny.Node, 0, len(g.Nodes))
	taken := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		n = n.Clone()
		n.Duplicate = false
		res.Nodes = append(res.Nodes, n)
		taken[n.ID] = true
	}

	if duplicate {
		for _, n := range g.Nodes {
			if n.Genome != first {
				continue
			}
			if _, done := res.DupOf[n.ID]; done {
				continue
			}
			dupID := duplicateID(n.ID, taken)
			taken[dupID] = true
			res.DupOf[n.ID] = dupID
			res.OriginalOf[dupID] = n.ID

			dup := n.Clone()
			dup.ID = dupID
			dup.Duplicate = true
			res.Nodes = append(res.Nodes, dup)
			res.DuplicatesAdded++
		}
	}

	byID := make(map[string]*synteny.Node, len(res.Nodes))
	for i := range res.Nodes {
		byID[res.Nodes[i].ID] = &res.Nodes[i]
	}
	rows := synteny.RowIndex(genomes)

	for _, e := range g.Edges {
		src, srcOK := byID[e.Source]
		tgt, tgtOK := byID[e.Target]
		if !srcOK || !tgtOK || src.Genome == "" || tgt.Genome == "" {
			logger.Warn("edge has missing genome mapping",
				"source", e.Source, "target", e.Target,
				"source_genome", genomeOf(src), "target_genome", genomeOf(tgt))
			res.Dangling++
			res.Edges = append(res.Edges, e)
			continue
		}

		if duplicate {
			rowSrc, rowTgt := rowOf(src.Genome, rows), rowOf(tgt.Genome, rows)
			if abs(rowSrc-rowTgt) > 1 {
				if src.Genome == first && !src.Duplicate {
					if dupID, ok := res.DupOf[src.ID]; ok {
						e.Source = dupID
						res.EdgesRetargeted++
					}
				} else if tgt.Genome == first && !tgt.Duplicate {
					if dupID, ok := res.DupOf[tgt.ID]; ok {
						e.Target = dupID
						res.EdgesRetargeted++
					}
				}
			}
		}

		if byID[e.Source].Genome == byID[e.Target].Genome {
			logger.Debug("filtered out same-genome edge",
				"source", e.Source, "target", e.Target, "genome", src.Genome)
			res.SameGenomeDropped++
			continue
		}
		res.Edges = append(res.Edges, e)
	}

	return res
}

// duplicateID appends the reserved suffix to id until it names no existing node.
func duplicateID(id string, taken map[string]bool) string {
	dup := id + synteny.DuplicateSuffix
	for taken[dup] {
		dup += synteny.DuplicateSuffix
	}
	return dup
}

// rowOf mirrors a list lookup: genomes that are not listed sit at -1.
func rowOf(genome string, rows map[string]int) int {
	if r, ok := rows[genome]; ok {
		return r
	}
	return -1
}

func genomeOf(n *synteny.Node) string {
	if n == nil {
		return ""
	}
	return n.Genome
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
