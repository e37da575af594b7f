package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/view"
)

func testDiagram() *diagram.Diagram {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes: []synteny.Node{
			{ID: "a", Genome: "G1", Protein: "dnaA"},
			{ID: "x", Genome: "G1", Protein: "gyrB"},
			{ID: "b", Genome: "G2", Protein: "dnaA"},
			{ID: "y", Genome: "G2", Protein: "gyrB"},
			{ID: "c", Genome: "G3", Protein: "dnaA"},
		},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("a", "b", 90, true),
			synteny.ScoreEdge("b", "c", 80, true),
			synteny.ScoreEdge("x", "y", 70, true),
		},
	}
	return diagram.Build(g, diagram.Options{})
}

func press(m tea.Model, keys ...string) ComponentModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(ComponentModel)
}

func TestComponentModelSelect(t *testing.T) {
	d := testDiagram()
	m := NewComponentModel(d, view.DefaultFilter(), view.State{})
	if len(m.roots) != d.Stats.Components {
		t.Fatalf("roots = %d, want %d", len(m.roots), d.Stats.Components)
	}

	root := m.roots[0]
	m = press(m, "x", "f")
	sel := m.Selection()
	if !sel.Focus {
		t.Error("f should turn focus on")
	}
	for _, id := range d.WithTwin(root) {
		if !m.State.NodeSelected(id) {
			t.Errorf("%s should be selected together with its twin", id)
		}
	}

	m = press(m, "x")
	if m.State.HasSelection() {
		t.Error("second toggle should deselect")
	}
	m = press(m, "x", "c")
	if m.State.HasSelection() || !m.State.Focused {
		t.Error("c clears the selection but keeps focus mode")
	}
}

func TestComponentModelNavigation(t *testing.T) {
	m := NewComponentModel(testDiagram(), view.DefaultFilter(), view.State{})
	m = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor should not move above the first row, got %d", m.cursor)
	}
	for range len(m.roots) + 3 {
		m = press(m, "down")
	}
	if m.cursor != len(m.roots)-1 {
		t.Errorf("cursor should stop at the last row, got %d", m.cursor)
	}
}

func TestComponentModelSaveAndView(t *testing.T) {
	m := NewComponentModel(testDiagram(), view.DefaultFilter(), view.State{})
	m = press(m, "x", "f", "enter")

	out := m.View()
	for _, want := range []string{"Groups", "focus on", "selected", "in focus", "G1"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}

	m = press(m, "w")
	if !m.Saved {
		t.Error("w should mark the selection saved")
	}
}

func TestComponentModelEmpty(t *testing.T) {
	m := NewComponentModel(diagram.Build(nil, diagram.Options{}), view.DefaultFilter(), view.State{})
	m = press(m, "x", "down", "enter")
	if !strings.Contains(m.View(), "empty") {
		t.Error("empty diagram should say so")
	}
}
