package synteny

import (
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		linkType string
		want     Category
		wire     string
	}{
		{"solid_color", CategoryFullyConsistent, "solid_color"},
		{"solid_red", CategoryInconsistent, "solid_red"},
		{"dotted_color", CategoryPartiallyConsistent, "dotted_color"},
		{"dotted_grey", CategoryNonReciprocal, "dotted_grey"},
		{"dotted_gray", CategoryNonReciprocal, "dotted_grey"},
		{"wavy_blue", CategoryUnknown, ""},
		{"", CategoryUnknown, ""},
	}
	for _, tt := range tests {
		got := ParseCategory(tt.linkType)
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.linkType, got, tt.want)
		}
		if w := got.LinkType(); w != tt.wire {
			t.Errorf("ParseCategory(%q).LinkType() = %q, want %q", tt.linkType, w, tt.wire)
		}
	}
}

func TestStrong(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want bool
	}{
		{"reciprocal score", ScoreEdge("a", "b", 10, true), true},
		{"one-way score", ScoreEdge("a", "b", 99, false), false},
		{"fully consistent", CategoryEdge("a", "b", "solid_color"), true},
		{"partially consistent", CategoryEdge("a", "b", "dotted_color"), true},
		{"inconsistent", CategoryEdge("a", "b", "solid_red"), false},
		{"non-reciprocal", CategoryEdge("a", "b", "dotted_grey"), false},
		{"unknown", CategoryEdge("a", "b", "wavy_blue"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Strong(); got != tt.want {
				t.Errorf("Strong() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryEdgeKeepsLinkType(t *testing.T) {
	e := CategoryEdge("a", "b", "wavy_blue")
	if e.Kind != EdgeKindCategory || e.LinkType != "wavy_blue" {
		t.Errorf("CategoryEdge = %+v", e)
	}
	if e.Kind.String() != "category" || EdgeKindScore.String() != "score" {
		t.Error("EdgeKind.String mismatch")
	}
	if got := e.Key().String(); got != "a-b" {
		t.Errorf("Key().String() = %q, want a-b", got)
	}
}

func TestRows(t *testing.T) {
	genomes := []string{"G1", "G2", "G3"}
	rows := RowIndex(genomes)

	if got := Row(Node{Genome: "G2"}, rows, 3); got != 1 {
		t.Errorf("Row(G2) = %d, want 1", got)
	}
	if got := Row(Node{Genome: "G1", Duplicate: true}, rows, 3); got != 3 {
		t.Errorf("Row(duplicate) = %d, want 3", got)
	}
	if got := Row(Node{Genome: "G9"}, rows, 3); got != -1 {
		t.Errorf("Row(unknown genome) = %d, want -1", got)
	}

	for n, want := range map[int]int{0: 0, 1: 1, 2: 2, 3: 4, 5: 6} {
		if got := RowCount(n); got != want {
			t.Errorf("RowCount(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestOriginalID(t *testing.T) {
	if id, ok := OriginalID("dnaA__dup"); !ok || id != "dnaA" {
		t.Errorf("OriginalID(dnaA__dup) = %q, %v", id, ok)
	}
	if id, ok := OriginalID("x__dup__dup"); !ok || id != "x__dup" {
		t.Errorf("OriginalID strips once, got %q, %v", id, ok)
	}
	if _, ok := OriginalID("dnaA"); ok {
		t.Error("OriginalID(dnaA) should report false")
	}
}

func TestNormalizeDirection(t *testing.T) {
	tests := map[string]string{
		"+":        DirectionPlus,
		" Plus ":   DirectionPlus,
		"positive": DirectionPlus,
		"-":        DirectionMinus,
		"NEGATIVE": DirectionMinus,
		"minus":    DirectionMinus,
		"Unknown":  "unknown",
	}
	for in, want := range tests {
		if got := NormalizeDirection(in); got != want {
			t.Errorf("NormalizeDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClone(t *testing.T) {
	present := true
	start := 12.0
	g := &Graph{
		Genomes: []string{"G1"},
		Nodes: []Node{{
			ID: "a", Genome: "G1", Present: &present,
			Domains: map[string]*float64{"domain1_start": &start, "domain1_end": nil},
		}},
		Edges: []Edge{ScoreEdge("a", "a", 1, true)},
	}

	c := g.Clone()
	*c.Nodes[0].Present = false
	*c.Nodes[0].Domains["domain1_start"] = 99
	c.Genomes[0] = "changed"
	c.Edges[0].Score = 50

	if !*g.Nodes[0].Present || start != 12 || g.Genomes[0] != "G1" || g.Edges[0].Score != 1 {
		t.Error("Clone shares state with the original")
	}
	if _, ok := c.Nodes[0].Domains["domain1_end"]; !ok {
		t.Error("Clone dropped a nil domain coordinate")
	}

	var nilGraph *Graph
	if nilGraph.Clone() != nil || !nilGraph.Empty() {
		t.Error("nil graph should clone to nil and be empty")
	}
}

func TestIsPresent(t *testing.T) {
	f := false
	if !(Node{}).IsPresent() {
		t.Error("nil Present should mean present")
	}
	if (Node{Present: &f}).IsPresent() {
		t.Error("explicit false should mean absent")
	}
}
