// Package render provides format conversion shared by the diagram renderers.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The row renderer lives in
// the [rows] subpackage:
//
//	dot := rows.ToDOT(d, rows.Options{})
//	svg, err := rows.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
package render
