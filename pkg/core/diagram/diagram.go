// Package diagram turns a raw synteny graph into the bundle a row renderer
// draws from.
//
// [Build] runs the three engine stages in order:
//
//  1. transform.Normalize: duplicate the first genome into a closing row,
//     re-terminate wrap edges, drop same-genome edges;
//  2. component.Group: merge genes connected by strong edges and each
//     duplicate with its original;
//  3. palette.Assign: color colorable components, grey out the rest.
//
// The returned [Diagram] is recomputed from scratch on every call and is not
// mutated afterwards. It exposes component membership ([Diagram.Find],
// [Diagram.Members]) for selection and focus features.
package diagram

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/synteny/component"
	"github.com/matzehuels/syntower/pkg/core/synteny/palette"
	"github.com/matzehuels/syntower/pkg/core/synteny/transform"
)

// Options configures [Build].
type Options struct {
	// Palette overrides the built-in colors; empty fields use the defaults.
	Palette palette.Palette

	// Logger receives normalization diagnostics. Nil discards them.
	Logger *log.Logger
}

// Stats summarizes what normalization changed.
type Stats struct {
	DuplicatesAdded   int
	EdgesRetargeted   int
	SameGenomeDropped int
	Dangling          int
	Components        int
}

// Diagram is the normalized, colored graph.
type Diagram struct {
	// Genomes is the input genome order, unchanged.
	Genomes []string
	// Nodes holds the originals followed by the closing-row duplicates.
	Nodes []synteny.Node
	// Edges holds the normalized edges.
	Edges []synteny.Edge
	// Colors maps every node ID, duplicates included, to its base color.
	Colors map[string]string
	// Colorable lists colorable component roots in palette order.
	Colorable []string
	// Domain is the domain name carried over from the input graph.
	Domain string

	Stats Stats

	grouping   *component.Grouping
	assignment *palette.Assignment
	rows       map[string]int
	byID       map[string]int
	dupOf      map[string]string
	originalOf map[string]string
}

// Build runs the engine on g. A nil graph or one without genomes produces an
// empty diagram.
func Build(g *synteny.Graph, opts Options) *Diagram {
	res := transform.Normalize(g, transform.Options{Logger: opts.Logger})
	grouping := component.Group(res.Nodes, res.Edges, res.OriginalOf)
	assignment := palette.Assign(res.Nodes, grouping, opts.Palette)

	d := &Diagram{
		Nodes:      res.Nodes,
		Edges:      res.Edges,
		Colors:     assignment.Colors,
		Colorable:  assignment.Colorable,
		grouping:   grouping,
		assignment: assignment,
		dupOf:      res.DupOf,
		originalOf: res.OriginalOf,
		Stats: Stats{
			DuplicatesAdded:   res.DuplicatesAdded,
			EdgesRetargeted:   res.EdgesRetargeted,
			SameGenomeDropped: res.SameGenomeDropped,
			Dangling:          res.Dangling,
			Components:        len(grouping.Roots),
		},
	}
	if g != nil {
		d.Genomes = slices.Clone(g.Genomes)
		d.Domain = g.Domain
	}
	if d.Genomes == nil {
		d.Genomes = []string{}
	}
	d.rows = synteny.RowIndex(d.Genomes)
	d.byID = make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		d.byID[n.ID] = i
	}
	return d
}

// Empty reports whether there is nothing to draw.
func (d *Diagram) Empty() bool { return len(d.Nodes) == 0 }

// Node returns the node with the given ID.
func (d *Diagram) Node(id string) (synteny.Node, bool) {
	i, ok := d.byID[id]
	if !ok {
		return synteny.Node{}, false
	}
	return d.Nodes[i], true
}

// Find returns the component root of id.
func (d *Diagram) Find(id string) (string, bool) { return d.grouping.Find(id) }

// Members returns every node ID in id's component.
func (d *Diagram) Members(id string) []string { return d.grouping.Members(id) }

// ComponentSize returns the size of the component containing id, or 0 for
// unknown IDs.
func (d *Diagram) ComponentSize(id string) int {
	root, ok := d.Find(id)
	if !ok {
		return 0
	}
	return d.grouping.Size(root)
}

// IsColorable reports whether root is a colorable component root.
func (d *Diagram) IsColorable(root string) bool { return d.assignment.IsColorable(root) }

// Roots returns component roots in order of first appearance.
func (d *Diagram) Roots() []string { return slices.Clone(d.grouping.Roots) }

// Color returns the base color of id.
func (d *Diagram) Color(id string) (string, bool) {
	c, ok := d.Colors[id]
	return c, ok
}

// Row returns the drawn row of id, or -1 for unknown nodes and nodes whose
// genome is not listed.
func (d *Diagram) Row(id string) int {
	n, ok := d.Node(id)
	if !ok {
		return -1
	}
	return synteny.Row(n, d.rows, len(d.Genomes))
}

// RowCount returns the number of drawn rows, including the closing row.
func (d *Diagram) RowCount() int { return synteny.RowCount(len(d.Genomes)) }

// Twin returns the duplicate of an original first-genome node, or the
// original of a duplicate.
func (d *Diagram) Twin(id string) (string, bool) {
	if dup, ok := d.dupOf[id]; ok {
		return dup, true
	}
	orig, ok := d.originalOf[id]
	return orig, ok
}

// WithTwin returns id followed by its twin, if any.
func (d *Diagram) WithTwin(id string) []string {
	if twin, ok := d.Twin(id); ok {
		return []string{id, twin}
	}
	return []string{id}
}
