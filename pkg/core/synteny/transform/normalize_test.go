package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntower/pkg/core/synteny"
)

func node(id, genome string) synteny.Node {
	return synteny.Node{ID: id, Genome: genome, Direction: synteny.DirectionPlus}
}

func threeGenomes() *synteny.Graph {
	return &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes: []synteny.Node{
			node("a1", "G1"), node("a2", "G1"),
			node("b1", "G2"),
			node("c1", "G3"),
		},
	}
}

func edgeByKey(edges []synteny.Edge, src, tgt string) (synteny.Edge, bool) {
	for _, e := range edges {
		if e.Source == src && e.Target == tgt {
			return e, true
		}
	}
	return synteny.Edge{}, false
}

func TestNormalize_Empty(t *testing.T) {
	for _, g := range []*synteny.Graph{nil, {}, {Nodes: []synteny.Node{node("a", "G1")}}} {
		res := Normalize(g, Options{})
		if len(res.Nodes) != 0 || len(res.Edges) != 0 {
			t.Errorf("Normalize(%v) = %d nodes, %d edges, want empty", g, len(res.Nodes), len(res.Edges))
		}
		if res.DupOf == nil || res.OriginalOf == nil {
			t.Error("Normalize() maps must not be nil")
		}
	}
}

func TestNormalize_TwoGenomesNoDuplicates(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2"},
		Nodes:   []synteny.Node{node("a", "G1"), node("b", "G2"), node("c", "G2")},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("a", "b", 90, true),
			synteny.ScoreEdge("b", "c", 80, true),
		},
	}

	res := Normalize(g, Options{})

	if res.DuplicatesAdded != 0 || len(res.Nodes) != 3 {
		t.Fatalf("DuplicatesAdded = %d, nodes = %d, want 0 and 3", res.DuplicatesAdded, len(res.Nodes))
	}
	if len(res.Edges) != 1 {
		t.Fatalf("Edges = %d, want 1 (same-genome edge dropped)", len(res.Edges))
	}
	if res.Edges[0] != g.Edges[0] {
		t.Errorf("edge modified: got %+v, want %+v", res.Edges[0], g.Edges[0])
	}
	if res.SameGenomeDropped != 1 {
		t.Errorf("SameGenomeDropped = %d, want 1", res.SameGenomeDropped)
	}
}

func TestNormalize_DuplicatesFirstGenome(t *testing.T) {
	g := threeGenomes()
	res := Normalize(g, Options{})

	if res.DuplicatesAdded != 2 {
		t.Fatalf("DuplicatesAdded = %d, want 2", res.DuplicatesAdded)
	}
	if len(res.Nodes) != 6 {
		t.Fatalf("len(Nodes) = %d, want 6", len(res.Nodes))
	}
	for i, want := range []string{"a1", "a2", "b1", "c1", "a1__dup", "a2__dup"} {
		if res.Nodes[i].ID != want {
			t.Errorf("Nodes[%d].ID = %q, want %q", i, res.Nodes[i].ID, want)
		}
	}
	dup := res.Nodes[4]
	if !dup.Duplicate || dup.Genome != "G1" || dup.Direction != synteny.DirectionPlus {
		t.Errorf("duplicate = %+v, want clone of a1 with Duplicate set", dup)
	}
	if res.Nodes[0].Duplicate {
		t.Error("original must not be flagged as duplicate")
	}
	if res.DupOf["a1"] != "a1__dup" || res.OriginalOf["a2__dup"] != "a2" {
		t.Errorf("DupOf/OriginalOf = %v / %v", res.DupOf, res.OriginalOf)
	}
	if len(g.Nodes) != 4 {
		t.Error("input graph was modified")
	}
}

func TestNormalize_RetargetsWrapEdges(t *testing.T) {
	tests := []struct {
		name       string
		edge       synteny.Edge
		wantSource string
		wantTarget string
		retargeted int
	}{
		{"adjacent untouched", synteny.ScoreEdge("a1", "b1", 50, true), "a1", "b1", 0},
		{"adjacent reverse untouched", synteny.ScoreEdge("c1", "b1", 50, true), "c1", "b1", 0},
		{"source in row 0", synteny.ScoreEdge("a1", "c1", 50, true), "a1__dup", "c1", 1},
		{"target in row 0", synteny.CategoryEdge("c1", "a2", synteny.LinkTypeSolidColor), "c1", "a2__dup", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := threeGenomes()
			g.Edges = []synteny.Edge{tt.edge}

			res := Normalize(g, Options{})

			if len(res.Edges) != 1 {
				t.Fatalf("len(Edges) = %d, want 1", len(res.Edges))
			}
			got := res.Edges[0]
			if got.Source != tt.wantSource || got.Target != tt.wantTarget {
				t.Errorf("edge = %s->%s, want %s->%s", got.Source, got.Target, tt.wantSource, tt.wantTarget)
			}
			if got.Kind != tt.edge.Kind || got.Score != tt.edge.Score || got.Category != tt.edge.Category {
				t.Errorf("edge payload changed: %+v", got)
			}
			if res.EdgesRetargeted != tt.retargeted {
				t.Errorf("EdgesRetargeted = %d, want %d", res.EdgesRetargeted, tt.retargeted)
			}
		})
	}
}

func TestNormalize_RowAdjacency(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes:   []synteny.Node{node("a", "G1"), node("b", "G2"), node("c", "G3")},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("a", "b", 10, false),
			synteny.ScoreEdge("b", "c", 10, false),
			synteny.ScoreEdge("c", "a", 10, false),
			synteny.ScoreEdge("a", "c", 10, false),
		},
	}

	res := Normalize(g, Options{})

	rows := synteny.RowIndex(g.Genomes)
	byID := map[string]synteny.Node{}
	for _, n := range res.Nodes {
		byID[n.ID] = n
	}
	for _, e := range res.Edges {
		src, tgt := byID[e.Source], byID[e.Target]
		rs := synteny.Row(src, rows, len(g.Genomes))
		rt := synteny.Row(tgt, rows, len(g.Genomes))
		if abs(rs-rt) > 1 {
			t.Errorf("edge %s->%s spans rows %d and %d", e.Source, e.Target, rs, rt)
		}
		if src.Genome == tgt.Genome {
			t.Errorf("edge %s->%s connects genome %s to itself", e.Source, e.Target, src.Genome)
		}
	}
	if _, ok := edgeByKey(res.Edges, "c", "a__dup"); !ok {
		t.Errorf("expected c->a__dup in %v", res.Edges)
	}
	if _, ok := edgeByKey(res.Edges, "a__dup", "c"); !ok {
		t.Errorf("expected a__dup->c in %v", res.Edges)
	}
}

func TestNormalize_DanglingEdgeSurvives(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := threeGenomes()
	g.Edges = []synteny.Edge{
		synteny.ScoreEdge("a1", "ghost", 40, true),
		synteny.ScoreEdge("ghost", "phantom", 40, true),
	}

	res := Normalize(g, Options{Logger: logger})

	if len(res.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2 (dangling edges pass through)", len(res.Edges))
	}
	if res.Edges[0] != g.Edges[0] || res.Edges[1] != g.Edges[1] {
		t.Errorf("dangling edges modified: %+v", res.Edges)
	}
	if res.Dangling != 2 {
		t.Errorf("Dangling = %d, want 2", res.Dangling)
	}
	if !strings.Contains(buf.String(), "missing genome mapping") {
		t.Errorf("expected warning in log output, got %q", buf.String())
	}
}

func TestNormalize_SameGenomeLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := threeGenomes()
	g.Edges = []synteny.Edge{synteny.ScoreEdge("a1", "a2", 99, true)}

	res := Normalize(g, Options{Logger: logger})

	if len(res.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(res.Edges))
	}
	if !strings.Contains(buf.String(), "same-genome") {
		t.Errorf("expected debug line in log output, got %q", buf.String())
	}
}

func TestNormalize_DuplicateIDCollision(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes: []synteny.Node{
			node("x", "G1"),
			node("x__dup", "G2"),
			node("y", "G3"),
		},
	}

	res := Normalize(g, Options{})

	if got := res.DupOf["x"]; got != "x__dup__dup" {
		t.Errorf("DupOf[x] = %q, want x__dup__dup", got)
	}
	seen := map[string]bool{}
	for _, n := range res.Nodes {
		if seen[n.ID] {
			t.Errorf("node ID %q emitted twice", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	g := threeGenomes()
	g.Edges = []synteny.Edge{
		synteny.ScoreEdge("a1", "b1", 70, true),
		synteny.ScoreEdge("c1", "a2", 70, true),
		synteny.CategoryEdge("b1", "c1", synteny.LinkTypeDottedGrey),
	}

	first := Normalize(g, Options{})
	second := Normalize(g, Options{})

	if len(first.Edges) != len(second.Edges) || len(first.Nodes) != len(second.Nodes) {
		t.Fatal("Normalize() is not deterministic")
	}
	for i := range first.Edges {
		if first.Edges[i] != second.Edges[i] {
			t.Errorf("Edges[%d] differs: %+v vs %+v", i, first.Edges[i], second.Edges[i])
		}
	}
	for i := range first.Nodes {
		if first.Nodes[i].ID != second.Nodes[i].ID {
			t.Errorf("Nodes[%d] differs: %s vs %s", i, first.Nodes[i].ID, second.Nodes[i].ID)
		}
	}
}
