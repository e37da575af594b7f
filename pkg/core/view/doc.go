// Package view holds the interactive state layered over a [diagram.Diagram].
//
// Nothing here mutates a diagram. Callers keep a [State] value (focus mode,
// selected nodes and edges), derive the visible edges with a [Filter], and
// compute a [Focus] from the three with [ComputeFocus]. The renderers then
// ask [StyleNode] and [StyleEdge] how to draw each element.
//
// Selection follows twins: selecting a first-genome gene also selects its
// closing-row duplicate and the other way round, since both stand for the
// same gene.
package view
