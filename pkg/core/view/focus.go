package view

import (
	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// Focus is the set of nodes and edges kept at full strength in focus mode.
// An inactive Focus dims nothing.
type Focus struct {
	Active bool
	Nodes  map[string]bool
	Edges  map[synteny.Key]bool
}

// DimNode reports whether id is drawn dimmed.
func (f Focus) DimNode(id string) bool { return f.Active && !f.Nodes[id] }

// DimEdge reports whether the edge k is drawn dimmed.
func (f Focus) DimEdge(k synteny.Key) bool { return f.Active && !f.Edges[k] }

// ComputeFocus derives the focus set. It is active only when s is in focus
// mode and something is selected. The set contains:
//
//   - every member of a selected node's component;
//   - visible edges whose endpoints are both focused by the rule above;
//   - visible edges touching a selected node or the twin of one, with both
//     endpoints and their twins;
//   - selected edges, with both endpoints and their twins.
func ComputeFocus(d *diagram.Diagram, visible []synteny.Edge, s State) Focus {
	f := Focus{
		Nodes: make(map[string]bool),
		Edges: make(map[synteny.Key]bool),
	}
	if !s.Focused || !s.HasSelection() {
		return f
	}
	f.Active = true

	for _, id := range s.Nodes() {
		for _, m := range d.Members(id) {
			f.Nodes[m] = true
		}
	}
	for _, e := range visible {
		if f.Nodes[e.Source] && f.Nodes[e.Target] {
			f.Edges[e.Key()] = true
		}
	}
	for _, e := range visible {
		src, tgt := d.WithTwin(e.Source), d.WithTwin(e.Target)
		if !anySelected(s, src) && !anySelected(s, tgt) {
			continue
		}
		f.add(src, tgt, e.Key())
	}
	for k := range s.SelectedEdges {
		f.add(d.WithTwin(k.Source), d.WithTwin(k.Target), k)
	}
	return f
}

func (f Focus) add(src, tgt []string, k synteny.Key) {
	for _, id := range src {
		f.Nodes[id] = true
	}
	for _, id := range tgt {
		f.Nodes[id] = true
	}
	f.Edges[k] = true
}

func anySelected(s State, ids []string) bool {
	for _, id := range ids {
		if s.SelectedNodes[id] {
			return true
		}
	}
	return false
}
