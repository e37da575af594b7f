package rows

import (
	"strings"
	"testing"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/synteny/palette"
	"github.com/matzehuels/syntower/pkg/core/view"
)

func sample() *diagram.Diagram {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes: []synteny.Node{
			{ID: "a", Genome: "G1", Protein: "dnaA", Direction: "plus", Position: 0},
			{ID: "b", Genome: "G2", Protein: "dnaB", Direction: "minus", Position: 1},
			{ID: "c", Genome: "G3", Protein: "dnaC", Direction: "+", Position: 2},
			{ID: "d", Genome: "G2", Protein: "gyrB", Direction: "minus", Position: 3},
		},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("a", "b", 90, true),
			synteny.ScoreEdge("c", "a", 10, true),
			synteny.CategoryEdge("b", "c", synteny.LinkTypeSolidRed),
			synteny.ScoreEdge("b", "ghost", 80, true),
		},
		Domain: "PF00308",
	}
	return diagram.Build(g, diagram.Options{})
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{Filter: view.DefaultFilter()})

	for _, want := range []string{
		"graph G {",
		"layout=neato",
		`label="PF00308"`,
		`"a" [shape=rarrow`,
		`"b" [shape=larrow`,
		`"c" [shape=rarrow`,
		`"a__dup" [shape=rarrow`,
		`"a" -- "b"`,
		`"b" -- "c"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOT_RowLabels(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if got := strings.Count(dot, `label="G1"`); got != 2 {
		t.Errorf("G1 label count = %d, want 2 (first and closing row)", got)
	}
	if !strings.Contains(dot, `"row3_label"`) {
		t.Error("closing row label missing")
	}
}

func TestToDOT_FilterAndDangling(t *testing.T) {
	dot := ToDOT(sample(), Options{Filter: view.DefaultFilter()})

	if strings.Contains(dot, `"c" -- "a__dup"`) {
		t.Error("edge below cutoff was drawn")
	}
	if strings.Contains(dot, "ghost") {
		t.Error("dangling edge was drawn")
	}

	all := view.DefaultFilter()
	all.Cutoff = 0
	if dot := ToDOT(sample(), Options{Filter: all}); !strings.Contains(dot, `"c" -- "a__dup"`) {
		t.Error("retargeted edge missing with cutoff 0")
	}
}

func TestToDOT_EdgeStyles(t *testing.T) {
	d := sample()
	dot := ToDOT(d, Options{Filter: view.DefaultFilter()})

	if !strings.Contains(dot, `color="`+palette.DefaultColors[0]+`", penwidth=5.5`) {
		t.Errorf("reciprocal edge should take component color with width 5.5:\n%s", dot)
	}
	if !strings.Contains(dot, `color="#ff0000", penwidth=6`) {
		t.Error("inconsistent edge should be red")
	}
}

func TestToDOT_Focus(t *testing.T) {
	d := sample()
	s := view.ToggleNode(d, view.State{Focused: true}, "c")

	dot := ToDOT(d, Options{Filter: view.DefaultFilter(), State: s})

	if !strings.Contains(dot, `fillcolor="#e6e6e64d"`) {
		t.Error("dimmed nodes should use translucent fill")
	}
	if !strings.Contains(nodeLine(dot, "c"), `color="#000000", penwidth=2`) {
		t.Error("selected node should have a black outline")
	}
	if !strings.Contains(nodeLine(dot, "d"), `fillcolor="#e6e6e64d"`) {
		t.Error("node outside the selected component should be dimmed")
	}
	if strings.Contains(nodeLine(dot, "a"), "4d\"") {
		t.Error("node in the selected component should not be dimmed")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(diagram.Build(nil, diagram.Options{}), Options{})

	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected output for empty diagram:\n%s", dot)
	}
	if strings.Contains(dot, "--") {
		t.Error("empty diagram should have no edges")
	}
}

func nodeLine(dot, id string) string {
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"`+id+`" [`) {
			return line
		}
	}
	return ""
}

func TestDotColor(t *testing.T) {
	tests := []struct {
		in      string
		opacity float64
		want    string
	}{
		{"#bbb", 1, "#bbbbbb"},
		{"red", 1, "#ff0000"},
		{"#1f77b4", 1, "#1f77b4"},
		{"#e6e6e6", 0.3, "#e6e6e64d"},
		{"transparent", 0.3, "transparent"},
	}
	for _, tt := range tests {
		if got := dotColor(tt.in, tt.opacity); got != tt.want {
			t.Errorf("dotColor(%q, %g) = %q, want %q", tt.in, tt.opacity, got, tt.want)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", 1.5: "1.5", 100: "100", -75: "-75", 0.333: "0.33"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%g) = %q, want %q", in, got, want)
		}
	}
}
