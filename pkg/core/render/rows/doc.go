// Package rows renders synteny diagrams as stacked genome rows.
//
// # Overview
//
// Each genome is a horizontal line; each gene is an arrow placed on its
// genome's line at its relative position and pointing in its reading
// direction. Relations between genes are straight lines between the arrows.
// With more than two genomes the first genome is drawn again as a closing
// row under the last one, so wrap-around relations stay between neighbouring
// rows.
//
// # Usage
//
//	d := diagram.Build(g, diagram.Options{})
//	dot := rows.ToDOT(d, rows.Options{Filter: view.DefaultFilter()})
//	svg, err := rows.RenderSVG(ctx, dot)
//
// Selection and focus from [view.State] are applied at DOT generation time:
// unfocused elements are dimmed, selected genes get a black outline and
// selected relations are drawn black.
//
// # Layout
//
// Node positions are pinned (pos="x,y!") and the graph is laid out with
// neato, so Graphviz only routes edges and sizes the canvas.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package.
package rows
