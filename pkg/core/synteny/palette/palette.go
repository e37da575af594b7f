// Package palette assigns display colors to genes from their component.
//
// A component is colorable when it links at least two genes across genomes.
// Singletons are not colorable, and neither is a pair made of a first-genome
// gene and its own closing-row duplicate: coloring it would suggest a
// relation that does not exist.
//
// Colorable components are mapped onto an ordered [Palette] in order of first
// appearance. When there are more colorable components than palette entries
// the colors wrap around.
package palette

import (
	"regexp"

	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/synteny/component"
	"github.com/matzehuels/syntower/pkg/errors"
)

// Fixed neutral colors.
const (
	// AbsentColor is used for genes whose present flag is false.
	AbsentColor = "#e6e6e6"
	// UngroupedColor is used for genes outside any colorable component.
	UngroupedColor = "#7f7f7f"
)

// DefaultColors is the ordered hue palette for colorable components.
var DefaultColors = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#00bfff",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#bcbd22",
	"#17becf",
	"#6b8e23",
	"#4682b4",
	"#dda0dd",
	"#40e0d0",
	"#ff69b4",
}

// Palette is the set of colors used by [Assign].
type Palette struct {
	Colors    []string `toml:"colors" json:"colors"`
	Absent    string   `toml:"absent" json:"absent"`
	Ungrouped string   `toml:"ungrouped" json:"ungrouped"`
}

// Default returns the built-in palette.
func Default() Palette {
	colors := make([]string, len(DefaultColors))
	copy(colors, DefaultColors)
	return Palette{Colors: colors, Absent: AbsentColor, Ungrouped: UngroupedColor}
}

// WithDefaults fills empty fields of p from [Default].
func (p Palette) WithDefaults() Palette {
	d := Default()
	if len(p.Colors) == 0 {
		p.Colors = d.Colors
	}
	if p.Absent == "" {
		p.Absent = d.Absent
	}
	if p.Ungrouped == "" {
		p.Ungrouped = d.Ungrouped
	}
	return p
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that every color is a #rgb or #rrggbb hex string.
func (p Palette) Validate() error {
	for i, c := range p.Colors {
		if !hexColor.MatchString(c) {
			return errors.New(errors.ErrCodeInvalidPalette, "palette color %d: invalid hex color %q", i, c)
		}
	}
	if p.Absent != "" && !hexColor.MatchString(p.Absent) {
		return errors.New(errors.ErrCodeInvalidPalette, "absent color: invalid hex color %q", p.Absent)
	}
	if p.Ungrouped != "" && !hexColor.MatchString(p.Ungrouped) {
		return errors.New(errors.ErrCodeInvalidPalette, "ungrouped color: invalid hex color %q", p.Ungrouped)
	}
	return nil
}

// Colorable reports whether the component rooted at root gets a palette color.
func Colorable(g *component.Grouping, root string) bool {
	size := g.Size(root)
	if size == 2 && g.HasDuplicate(root) {
		return false
	}
	return size > 1
}

// Assignment is the outcome of [Assign].
type Assignment struct {
	// Colors maps every node ID to its display color.
	Colors map[string]string

	// Colorable lists the colorable roots in palette order.
	Colorable []string

	// RootColors maps each colorable root to its palette color.
	RootColors map[string]string
}

// IsColorable reports whether root was assigned a palette color.
func (a *Assignment) IsColorable(root string) bool {
	_, ok := a.RootColors[root]
	return ok
}

// Assign computes the display color of every node.
//
// Priority: an absent gene gets p.Absent; a gene in a colorable component
// gets that component's palette color; every other gene gets p.Ungrouped.
// Empty palette fields fall back to [Default].
func Assign(nodes []synteny.Node, g *component.Grouping, p Palette) *Assignment {
	p = p.WithDefaults()
	a := &Assignment{
		Colors:     make(map[string]string, len(nodes)),
		RootColors: make(map[string]string),
	}
	for _, root := range g.Roots {
		if !Colorable(g, root) {
			continue
		}
		a.RootColors[root] = p.Colors[len(a.Colorable)%len(p.Colors)]
		a.Colorable = append(a.Colorable, root)
	}
	for _, n := range nodes {
		a.Colors[n.ID] = NodeColor(n, g.Set.Root(n.ID), a.RootColors, p)
	}
	return a
}

// NodeColor is the per-node color rule used by [Assign].
func NodeColor(n synteny.Node, root string, rootColors map[string]string, p Palette) string {
	if !n.IsPresent() {
		return p.Absent
	}
	if c, ok := rootColors[root]; ok {
		return c
	}
	return p.Ungrouped
}
