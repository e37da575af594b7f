// Package component groups genes into connected components for coloring.
//
// [Set] is a union-find forest with union by rank and path compression. IDs
// are interned into dense indices on construction so the hot path works on
// int slices; the public API stays ID based.
//
// [Group] applies the merge policy of the synteny diagram: genes linked by a
// strong edge share a component, and every closing-row duplicate shares the
// component of the gene it was cloned from, whether or not an edge connects
// them.
//
//	g := component.Group(nodes, edges, res.OriginalOf)
//	root, _ := g.Find("geneA")
//	fmt.Println(g.Size(root), g.Members("geneA"))
package component
