package diagram

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/synteny/palette"
)

func present(v bool) *bool { return &v }

func gene(id, genome string) synteny.Node {
	return synteny.Node{ID: id, Genome: genome, Direction: synteny.DirectionPlus}
}

func TestBuild_Empty(t *testing.T) {
	for name, g := range map[string]*synteny.Graph{
		"nil":        nil,
		"no genomes": {Nodes: []synteny.Node{gene("a", "G1")}, Edges: []synteny.Edge{synteny.ScoreEdge("a", "a", 1, true)}},
		"zero":       {},
	} {
		t.Run(name, func(t *testing.T) {
			d := Build(g, Options{})
			if !d.Empty() || len(d.Edges) != 0 || len(d.Colors) != 0 {
				t.Errorf("Build() = %d nodes %d edges %d colors, want empty", len(d.Nodes), len(d.Edges), len(d.Colors))
			}
			if d.Genomes == nil || d.Colors == nil {
				t.Error("empty diagram must carry non-nil slices and maps")
			}
			if _, ok := d.Find("a"); ok {
				t.Error("Find on empty diagram should miss")
			}
		})
	}
}

// Three genomes, one gene each, reciprocal G1–G2 and G2–G3.
func TestBuild_ScenarioA(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes:   []synteny.Node{gene("g1", "G1"), gene("g2", "G2"), gene("g3", "G3")},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("g1", "g2", 80, true),
			synteny.ScoreEdge("g2", "g3", 80, true),
		},
	}

	d := Build(g, Options{})

	if len(d.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(d.Nodes))
	}
	if d.ComponentSize("g1") != 4 {
		t.Errorf("ComponentSize(g1) = %d, want 4", d.ComponentSize("g1"))
	}
	want := palette.DefaultColors[0]
	for _, n := range d.Nodes {
		if d.Colors[n.ID] != want {
			t.Errorf("%s color = %s, want %s", n.ID, d.Colors[n.ID], want)
		}
	}
	if d.Row("g1__dup") != 3 {
		t.Errorf("Row(g1__dup) = %d, want 3", d.Row("g1__dup"))
	}
	if d.RowCount() != 4 {
		t.Errorf("RowCount() = %d, want 4", d.RowCount())
	}
}

// Two genomes, one non-reciprocal edge.
func TestBuild_ScenarioB(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2"},
		Nodes:   []synteny.Node{gene("a", "G1"), gene("b", "G2")},
		Edges:   []synteny.Edge{synteny.ScoreEdge("a", "b", 95, false)},
	}

	d := Build(g, Options{})

	if len(d.Nodes) != 2 || d.Stats.DuplicatesAdded != 0 {
		t.Fatalf("nodes = %d duplicates = %d, want 2 and 0", len(d.Nodes), d.Stats.DuplicatesAdded)
	}
	if len(d.Edges) != 1 {
		t.Errorf("len(Edges) = %d, want 1", len(d.Edges))
	}
	for _, id := range []string{"a", "b"} {
		if d.ComponentSize(id) != 1 {
			t.Errorf("ComponentSize(%s) = %d, want 1", id, d.ComponentSize(id))
		}
		if d.Colors[id] != palette.UngroupedColor {
			t.Errorf("%s color = %s, want %s", id, d.Colors[id], palette.UngroupedColor)
		}
	}
	if len(d.Colorable) != 0 {
		t.Errorf("Colorable = %v, want none", d.Colorable)
	}
}

// An absent gene inside an otherwise colorable 3-gene component.
func TestBuild_ScenarioC(t *testing.T) {
	missing := gene("b", "G2")
	missing.Present = present(false)
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2"},
		Nodes:   []synteny.Node{gene("a", "G1"), missing, gene("c", "G1")},
		Edges: []synteny.Edge{
			synteny.CategoryEdge("a", "b", synteny.LinkTypeSolidColor),
			synteny.CategoryEdge("b", "c", synteny.LinkTypeDottedColor),
		},
	}

	d := Build(g, Options{})

	if d.ComponentSize("a") != 3 {
		t.Fatalf("ComponentSize(a) = %d, want 3", d.ComponentSize("a"))
	}
	if d.Colors["b"] != palette.AbsentColor {
		t.Errorf("b color = %s, want %s", d.Colors["b"], palette.AbsentColor)
	}
	want := palette.DefaultColors[0]
	if d.Colors["a"] != want || d.Colors["c"] != want {
		t.Errorf("a, c = %s, %s, want %s", d.Colors["a"], d.Colors["c"], want)
	}
}

func TestBuild_DuplicateCountMatchesFirstRow(t *testing.T) {
	g := randomGraph(rand.New(rand.NewSource(7)), 4, 30, 60)

	d := Build(g, Options{})

	firstRow := 0
	for _, n := range g.Nodes {
		if n.Genome == g.Genomes[0] {
			firstRow++
		}
	}
	if d.Stats.DuplicatesAdded != firstRow {
		t.Errorf("DuplicatesAdded = %d, want %d", d.Stats.DuplicatesAdded, firstRow)
	}
	for _, n := range g.Nodes {
		if n.Genome != g.Genomes[0] {
			continue
		}
		twin, ok := d.Twin(n.ID)
		if !ok {
			t.Errorf("%s has no duplicate", n.ID)
			continue
		}
		if back, _ := d.Twin(twin); back != n.ID {
			t.Errorf("Twin(%s) = %s, want %s", twin, back, n.ID)
		}
	}
}

func TestBuild_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		genomes := 2 + rng.Intn(3)
		g := randomGraph(rng, genomes, 5+rng.Intn(20), rng.Intn(40))

		d := Build(g, Options{})

		if genomes <= 2 && len(d.Nodes) != len(g.Nodes) {
			t.Errorf("case %d: duplicates created with %d genomes", i, genomes)
		}
		for _, e := range d.Edges {
			src, _ := d.Node(e.Source)
			tgt, _ := d.Node(e.Target)
			if src.Genome == tgt.Genome {
				t.Errorf("case %d: same-genome edge %s->%s survived", i, e.Source, e.Target)
			}
		}
		for _, n := range d.Nodes {
			c, ok := d.Colors[n.ID]
			if !ok {
				t.Errorf("case %d: no color for %s", i, n.ID)
			}
			if !n.IsPresent() && c != palette.AbsentColor {
				t.Errorf("case %d: absent node %s colored %s", i, n.ID, c)
			}
			if n.IsPresent() && d.ComponentSize(n.ID) == 1 && c != palette.UngroupedColor {
				t.Errorf("case %d: singleton %s colored %s", i, n.ID, c)
			}
		}
	}
}

// Edges between the first genome and its non-neighbours are the only
// non-adjacent ones the backend produces in a three-genome graph.
func TestBuild_RowAdjacencyThreeGenomes(t *testing.T) {
	g := randomGraph(rand.New(rand.NewSource(3)), 3, 20, 50)

	d := Build(g, Options{})

	for _, e := range d.Edges {
		rs, rt := d.Row(e.Source), d.Row(e.Target)
		if rs-rt > 1 || rt-rs > 1 {
			t.Errorf("edge %s->%s spans rows %d and %d", e.Source, e.Target, rs, rt)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	g := randomGraph(rand.New(rand.NewSource(11)), 4, 25, 50)

	first := Build(g, Options{})
	second := Build(g, Options{})

	if !reflect.DeepEqual(first.Nodes, second.Nodes) {
		t.Error("Nodes differ between runs")
	}
	if !reflect.DeepEqual(first.Edges, second.Edges) {
		t.Error("Edges differ between runs")
	}
	if !reflect.DeepEqual(first.Colors, second.Colors) {
		t.Error("Colors differ between runs")
	}
	if !reflect.DeepEqual(first.Colorable, second.Colorable) {
		t.Error("Colorable differ between runs")
	}
}

func TestBuild_ColorIndependentOfRow(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2", "G3"},
		Nodes:   []synteny.Node{gene("a", "G1"), gene("b", "G2"), gene("c", "G3"), gene("z", "G2")},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("c", "a", 50, true),
		},
	}

	d := Build(g, Options{})

	if d.Colors["a"] != d.Colors["a__dup"] || d.Colors["a"] != d.Colors["c"] {
		t.Errorf("a=%s a__dup=%s c=%s, want equal", d.Colors["a"], d.Colors["a__dup"], d.Colors["c"])
	}
	if d.Colors["b"] != palette.UngroupedColor {
		t.Errorf("b = %s, want ungrouped", d.Colors["b"])
	}
}

func TestBuild_CustomPalette(t *testing.T) {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2"},
		Nodes:   []synteny.Node{gene("a", "G1"), gene("b", "G2")},
		Edges:   []synteny.Edge{synteny.ScoreEdge("a", "b", 50, true)},
	}

	d := Build(g, Options{Palette: palette.Palette{Colors: []string{"#000000"}}})

	if d.Colors["a"] != "#000000" {
		t.Errorf("a = %s, want #000000", d.Colors["a"])
	}
}

func randomGraph(rng *rand.Rand, genomes, nodes, edges int) *synteny.Graph {
	g := &synteny.Graph{}
	for i := 0; i < genomes; i++ {
		g.Genomes = append(g.Genomes, fmt.Sprintf("G%d", i+1))
	}
	for i := 0; i < nodes; i++ {
		n := gene(fmt.Sprintf("n%02d", i), g.Genomes[rng.Intn(genomes)])
		n.Position = float64(i)
		if rng.Intn(6) == 0 {
			n.Present = present(false)
		}
		g.Nodes = append(g.Nodes, n)
	}
	for i := 0; i < edges && nodes > 1; i++ {
		src := g.Nodes[rng.Intn(nodes)].ID
		tgt := g.Nodes[rng.Intn(nodes)].ID
		if rng.Intn(2) == 0 {
			g.Edges = append(g.Edges, synteny.ScoreEdge(src, tgt, float64(rng.Intn(100)), rng.Intn(2) == 0))
		} else {
			types := []string{synteny.LinkTypeSolidColor, synteny.LinkTypeSolidRed, synteny.LinkTypeDottedColor, synteny.LinkTypeDottedGrey}
			g.Edges = append(g.Edges, synteny.CategoryEdge(src, tgt, types[rng.Intn(len(types))]))
		}
	}
	return g
}
