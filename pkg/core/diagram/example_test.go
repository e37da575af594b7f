package diagram_test

import (
	"fmt"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
)

func ExampleBuild() {
	// Three genomes, so the first row is repeated below the last one
	g := &synteny.Graph{
		Genomes: []string{"E.coli", "B.subtilis", "S.aureus"},
		Nodes: []synteny.Node{
			{ID: "ec1", Genome: "E.coli"},
			{ID: "bs1", Genome: "B.subtilis"},
			{ID: "sa1", Genome: "S.aureus"},
		},
		Edges: []synteny.Edge{
			synteny.ScoreEdge("ec1", "bs1", 92, true),
			synteny.ScoreEdge("sa1", "ec1", 71, true),
		},
	}

	d := diagram.Build(g, diagram.Options{})

	for _, n := range d.Nodes {
		fmt.Printf("%-8s row=%d color=%s\n", n.ID, d.Row(n.ID), d.Colors[n.ID])
	}
	for _, e := range d.Edges {
		fmt.Println(e.Key())
	}
	// Output:
	// ec1      row=0 color=#1f77b4
	// bs1      row=1 color=#1f77b4
	// sa1      row=2 color=#1f77b4
	// ec1__dup row=3 color=#1f77b4
	// ec1-bs1
	// sa1-ec1__dup
}

func ExampleDiagram_Members() {
	g := &synteny.Graph{
		Genomes: []string{"G1", "G2"},
		Nodes: []synteny.Node{
			{ID: "a", Genome: "G1"},
			{ID: "b", Genome: "G2"},
			{ID: "c", Genome: "G2"},
		},
		Edges: []synteny.Edge{
			synteny.CategoryEdge("a", "b", synteny.LinkTypeSolidColor),
			synteny.CategoryEdge("a", "c", synteny.LinkTypeSolidRed),
		},
	}

	d := diagram.Build(g, diagram.Options{})

	fmt.Println(len(d.Members("a")), len(d.Members("c")))
	// Output:
	// 2 1
}
