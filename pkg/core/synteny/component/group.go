package component

import "github.com/matzehuels/syntower/pkg/core/synteny"

// Grouping is the component structure of a normalized graph.
type Grouping struct {
	// Set answers membership queries. It is owned by the Grouping; callers
	// that keep it past a redraw should treat it as read-only.
	Set *Set

	// Roots lists component roots in order of first appearance in the node
	// list passed to [Group].
	Roots []string

	sizes   map[string]int
	withDup map[string]bool
}

// Group builds components over nodes.
//
// Two nodes are merged when a strong edge connects them (a reciprocal score
// edge or a color-bearing category edge); non-reciprocal and inconsistent
// edges never merge. Each duplicate node is also merged with its original,
// looked up in originalOf and falling back to stripping
// synteny.DuplicateSuffix.
func Group(nodes []synteny.Node, edges []synteny.Edge, originalOf map[string]string) *Grouping {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	set := New(ids)

	for _, e := range edges {
		if e.Strong() {
			set.Union(e.Source, e.Target)
		}
	}
	for _, n := range nodes {
		if !n.Duplicate {
			continue
		}
		orig, ok := originalOf[n.ID]
		if !ok {
			orig, ok = synteny.OriginalID(n.ID)
		}
		if ok && set.Has(orig) {
			set.Union(n.ID, orig)
		}
	}

	g := &Grouping{
		Set:     set,
		sizes:   make(map[string]int),
		withDup: make(map[string]bool),
	}
	for _, n := range nodes {
		root := set.Root(n.ID)
		if _, seen := g.sizes[root]; !seen {
			g.Roots = append(g.Roots, root)
		}
		g.sizes[root]++
		if n.Duplicate {
			g.withDup[root] = true
		}
	}
	return g
}

// Find returns the root of id's component.
func (g *Grouping) Find(id string) (string, bool) { return g.Set.Find(id) }

// Size returns the number of nodes whose root is root.
func (g *Grouping) Size(root string) int { return g.sizes[root] }

// HasDuplicate reports whether the component rooted at root contains a
// duplicate node.
func (g *Grouping) HasDuplicate(root string) bool { return g.withDup[root] }

// Members returns the IDs in id's component.
func (g *Grouping) Members(id string) []string { return g.Set.Members(id) }
