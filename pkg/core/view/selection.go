package view

import (
	"cmp"
	"slices"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// Selection is the wire form of a [State], as carried by API requests and
// config files.
type Selection struct {
	Focus bool          `json:"focus,omitempty" toml:"focus"`
	Nodes []string      `json:"nodes,omitempty" toml:"nodes"`
	Edges []synteny.Key `json:"edges,omitempty" toml:"edges"`
}

// Empty reports whether nothing is selected and focus is off.
func (s Selection) Empty() bool {
	return !s.Focus && len(s.Nodes) == 0 && len(s.Edges) == 0
}

// State resolves the selection against d. Each listed node is selected
// together with its twin, as if clicked once.
func (s Selection) State(d *diagram.Diagram) State {
	st := State{Focused: s.Focus}.clone()
	for _, id := range s.Nodes {
		if !st.SelectedNodes[id] {
			st = ToggleNode(d, st, id)
		}
	}
	for _, k := range s.Edges {
		st.SelectedEdges[k] = true
	}
	return st
}

// SelectionOf converts a state back to its wire form, sorted.
func SelectionOf(s State) Selection {
	out := Selection{Focus: s.Focused, Nodes: s.Nodes()}
	for k := range s.SelectedEdges {
		out.Edges = append(out.Edges, k)
	}
	slices.SortFunc(out.Edges, func(a, b synteny.Key) int {
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})
	return out
}
