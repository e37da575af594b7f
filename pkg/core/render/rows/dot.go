package rows

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/view"
)

// Layout defaults, in points.
const (
	DefaultRowHeight = 150.0
	DefaultSpacing   = 100.0

	arrowWidth  = 40.0
	arrowHeight = 20.0
	labelWidth  = 120.0
	rowPadding  = 30.0
)

// Options configures row diagram rendering.
type Options struct {
	// RowHeight is the vertical distance between genome rows.
	RowHeight float64
	// Spacing is the horizontal distance per unit of relative position.
	Spacing float64

	// Filter selects the drawn edges. The zero value hides every edge kind;
	// use [view.DefaultFilter] for the usual settings.
	Filter view.Filter
	// State carries selection and focus mode.
	State view.State

	// Detailed adds protein and position to gene labels.
	Detailed bool
}

func (o Options) withDefaults() Options {
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Spacing <= 0 {
		o.Spacing = DefaultSpacing
	}
	return o
}

// ToDOT converts a diagram to Graphviz DOT with every node pinned to its row
// and position. The output must be laid out with neato, as [RenderSVG] does.
//
// Edges with an endpoint that is not a diagram node are skipped.
func ToDOT(d *diagram.Diagram, opts Options) string {
	opts = opts.withDefaults()
	visible := opts.Filter.Apply(d.Edges)
	focus := view.ComputeFocus(d, visible, opts.State)
	rowCount := d.RowCount()
	minPos, maxPos := positionRange(d.Nodes)

	y := func(row int) float64 { return float64(rowCount-1-row) * opts.RowHeight }
	x := func(pos float64) float64 { return (pos-minPos)*opts.Spacing + arrowWidth }
	right := x(maxPos) + arrowWidth

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [dir=none];\n")
	if d.Domain != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", d.Domain)
	}
	buf.WriteString("\n")

	for row, label := range view.RowLabels(d.Genomes) {
		ry := y(row)
		fmt.Fprintf(&buf, "  %q [shape=plaintext, label=%q, pos=\"%s,%s!\"];\n",
			rowID(row, "label"), label, num(-labelWidth/2-rowPadding), num(ry))
		fmt.Fprintf(&buf, "  %q [shape=point, width=0, style=invis, pos=\"%s,%s!\"];\n",
			rowID(row, "l"), num(0), num(ry))
		fmt.Fprintf(&buf, "  %q [shape=point, width=0, style=invis, pos=\"%s,%s!\"];\n",
			rowID(row, "r"), num(right), num(ry))
		fmt.Fprintf(&buf, "  %q -- %q [color=\"#000000\", penwidth=2];\n", rowID(row, "l"), rowID(row, "r"))
	}
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		row := d.Row(n.ID)
		if row < 0 {
			continue
		}
		st := view.StyleNode(d, focus, opts.State, n.ID)
		attrs := []string{
			"shape=" + arrowShape(n.Direction),
			"style=filled",
			"fixedsize=true",
			fmt.Sprintf("width=%s, height=%s", num(arrowWidth/72), num(arrowHeight/72)),
			fmt.Sprintf("fillcolor=%q", dotColor(st.Fill, st.Opacity)),
			fmt.Sprintf("pos=\"%s,%s!\"", num(x(n.Position)), num(y(row))),
			fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed)),
			fmt.Sprintf("tooltip=%q", nodeTooltip(n)),
		}
		if st.Stroke == "none" {
			attrs = append(attrs, "penwidth=0")
		} else {
			attrs = append(attrs, fmt.Sprintf("color=%q", dotColor(st.Stroke, 1)), "penwidth="+num(st.StrokeWidth))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}
	buf.WriteString("\n")

	for _, e := range visible {
		src, okSrc := d.Node(e.Source)
		tgt, okTgt := d.Node(e.Target)
		if !okSrc || !okTgt || d.Row(src.ID) < 0 || d.Row(tgt.ID) < 0 {
			continue
		}
		st := view.StyleEdge(d, focus, opts.State, e)
		attrs := []string{
			fmt.Sprintf("color=%q", dotColor(st.Stroke, st.Opacity)),
			"penwidth=" + num(st.Width),
			fmt.Sprintf("tooltip=%q", edgeTooltip(src, tgt, e)),
		}
		if st.Dashed {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rowID(row int, part string) string { return fmt.Sprintf("row%d_%s", row, part) }

func positionRange(nodes []synteny.Node) (lo, hi float64) {
	if len(nodes) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		lo = min(lo, n.Position)
		hi = max(hi, n.Position)
	}
	return lo, hi
}

func arrowShape(direction string) string {
	switch synteny.NormalizeDirection(direction) {
	case synteny.DirectionPlus:
		return "rarrow"
	case synteny.DirectionMinus:
		return "larrow"
	default:
		return "box"
	}
}

func nodeLabel(n synteny.Node, detailed bool) string {
	if !detailed {
		return ""
	}
	name := n.Protein
	if name == "" {
		name = n.ID
	}
	return fmt.Sprintf("%s\n%s", name, num(n.Position))
}

func nodeTooltip(n synteny.Node) string {
	parts := []string{n.Protein, "Genome: " + n.Genome, "Position: " + num(n.Position)}
	if n.GeneType != "" {
		parts = append(parts, "Type: "+n.GeneType)
	}
	if !n.IsPresent() {
		parts = append(parts, "Absent")
	}
	return strings.Join(parts, "\n")
}

func edgeTooltip(src, tgt synteny.Node, e synteny.Edge) string {
	head := src.Protein + " <-> " + tgt.Protein
	switch e.Kind {
	case synteny.EdgeKindScore:
		kind := "Non-reciprocal"
		if e.Reciprocal {
			kind = "Reciprocal"
		}
		return fmt.Sprintf("%s\nScore: %s\n%s", head, num(e.Score), kind)
	default:
		return head + "\n" + e.Category.Describe()
	}
}

// num formats a float without trailing zeros.
func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

var namedColors = map[string]string{
	"red":   "#ff0000",
	"black": "#000000",
	"white": "#ffffff",
}

// dotColor turns a CSS color into a Graphviz #rrggbb[aa] color.
func dotColor(c string, opacity float64) string {
	if hex, ok := namedColors[c]; ok {
		c = hex
	}
	if len(c) == 4 && c[0] == '#' {
		c = string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	if opacity >= 1 || len(c) != 7 || c[0] != '#' {
		return c
	}
	return fmt.Sprintf("%s%02x", c, int(math.Round(opacity*255)))
}
