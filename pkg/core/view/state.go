package view

import (
	"maps"
	"slices"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// State is the user's selection over a diagram. The zero value has nothing
// selected and focus mode off.
//
// State values are treated as immutable: [ToggleNode], [ToggleEdge] and the
// With* methods return modified copies.
type State struct {
	// Focused dims everything outside the current selection.
	Focused bool

	SelectedNodes map[string]bool
	SelectedEdges map[synteny.Key]bool
}

// HasSelection reports whether any node or edge is selected.
func (s State) HasSelection() bool {
	return len(s.SelectedNodes) > 0 || len(s.SelectedEdges) > 0
}

// NodeSelected reports whether id is selected.
func (s State) NodeSelected(id string) bool { return s.SelectedNodes[id] }

// EdgeSelected reports whether the edge k is selected.
func (s State) EdgeSelected(k synteny.Key) bool { return s.SelectedEdges[k] }

// WithFocus returns s with focus mode set to on.
func (s State) WithFocus(on bool) State {
	s = s.clone()
	s.Focused = on
	return s
}

// Cleared returns s with the selection emptied. Focus mode is kept.
func (s State) Cleared() State {
	return State{Focused: s.Focused}
}

// Nodes returns the selected node IDs in sorted order.
func (s State) Nodes() []string {
	return slices.Sorted(maps.Keys(s.SelectedNodes))
}

// ToggleNode flips the selection of id and its twin together. When id is
// selected both become unselected, otherwise both become selected.
func ToggleNode(d *diagram.Diagram, s State, id string) State {
	s = s.clone()
	on := !s.SelectedNodes[id]
	for _, n := range d.WithTwin(id) {
		if on {
			s.SelectedNodes[n] = true
		} else {
			delete(s.SelectedNodes, n)
		}
	}
	return s
}

// ToggleEdge flips the selection of the edge k.
func ToggleEdge(s State, k synteny.Key) State {
	s = s.clone()
	if s.SelectedEdges[k] {
		delete(s.SelectedEdges, k)
	} else {
		s.SelectedEdges[k] = true
	}
	return s
}

func (s State) clone() State {
	out := State{
		Focused:       s.Focused,
		SelectedNodes: make(map[string]bool, len(s.SelectedNodes)),
		SelectedEdges: make(map[synteny.Key]bool, len(s.SelectedEdges)),
	}
	maps.Copy(out.SelectedNodes, s.SelectedNodes)
	maps.Copy(out.SelectedEdges, s.SelectedEdges)
	return out
}
