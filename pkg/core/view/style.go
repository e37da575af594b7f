package view

import (
	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// Overlay colors.
const (
	DimColor          = "#e6e6e6"
	NeutralColor      = "#bbb"
	InconsistentColor = "red"
	SelectedColor     = "#000"

	DimOpacity = 0.3
)

// NodeStyle is how a gene arrow is drawn.
type NodeStyle struct {
	Fill        string
	Stroke      string // "none" unless selected
	StrokeWidth float64
	Opacity     float64
}

// EdgeStyle is how a relation line is drawn.
type EdgeStyle struct {
	Stroke  string
	Width   float64
	Dashed  bool
	Opacity float64
}

// StyleNode returns the style of node id.
func StyleNode(d *diagram.Diagram, f Focus, s State, id string) NodeStyle {
	st := NodeStyle{Fill: NeutralColor, Stroke: "none", Opacity: 1}
	if c, ok := d.Color(id); ok {
		st.Fill = c
	}
	if f.DimNode(id) {
		st.Fill = DimColor
		st.Opacity = DimOpacity
	}
	if s.NodeSelected(id) {
		st.Stroke = "black"
		st.StrokeWidth = 2
	}
	return st
}

// StyleEdge returns the style of e.
//
// Reciprocal score edges and color-bearing category edges take the color of
// their source gene; inconsistent edges are red; everything else is neutral.
// Selection overrides the color and focus dimming overrides both.
func StyleEdge(d *diagram.Diagram, f Focus, s State, e synteny.Edge) EdgeStyle {
	st := EdgeStyle{
		Stroke:  edgeColor(d, e),
		Width:   EdgeWidth(e),
		Dashed:  Dashed(e),
		Opacity: 1,
	}
	k := e.Key()
	if s.EdgeSelected(k) {
		st.Stroke = SelectedColor
	}
	if f.DimEdge(k) {
		st.Stroke = DimColor
		st.Opacity = DimOpacity
	}
	return st
}

// EdgeWidth maps a score in [0, 100] onto a stroke width in [1, 6]. Category
// edges are drawn at full width.
func EdgeWidth(e synteny.Edge) float64 {
	score := 100.0
	if e.Kind == synteny.EdgeKindScore {
		score = e.Score
	}
	return 2 * (0.5 + 2.5*score/100)
}

// Dashed reports whether e is drawn with a dash pattern.
func Dashed(e synteny.Edge) bool {
	switch e.Kind {
	case synteny.EdgeKindScore:
		return !e.Reciprocal
	case synteny.EdgeKindCategory:
		return e.Category.Dotted()
	}
	return false
}

func edgeColor(d *diagram.Diagram, e synteny.Edge) string {
	switch e.Kind {
	case synteny.EdgeKindScore:
		if !e.Reciprocal {
			return NeutralColor
		}
	case synteny.EdgeKindCategory:
		if e.Category == synteny.CategoryInconsistent {
			return InconsistentColor
		}
		if !e.Category.ColorBearing() {
			return NeutralColor
		}
	}
	if c, ok := d.Color(e.Source); ok {
		return c
	}
	return NeutralColor
}
