package view

import (
	"fmt"

	"github.com/matzehuels/syntower/pkg/core/synteny"
)

// DefaultCutoff hides score edges below 25.
const DefaultCutoff = 25.0

// Filter decides which edges are drawn.
//
// Cutoff applies to score edges only. Category edges are shown according to
// their category toggle; dotted_grey edges follow ShowNonReciprocal. Edges of
// an unknown category are always shown.
type Filter struct {
	Cutoff                  float64 `toml:"cutoff" json:"cutoff"`
	ShowReciprocal          bool    `toml:"show_reciprocal" json:"show_reciprocal"`
	ShowNonReciprocal       bool    `toml:"show_non_reciprocal" json:"show_non_reciprocal"`
	ShowConsistent          bool    `toml:"show_consistent" json:"show_consistent"`
	ShowInconsistent        bool    `toml:"show_inconsistent" json:"show_inconsistent"`
	ShowPartiallyConsistent bool    `toml:"show_partially_consistent" json:"show_partially_consistent"`
}

// DefaultFilter shows every edge kind above [DefaultCutoff].
func DefaultFilter() Filter {
	return Filter{
		Cutoff:                  DefaultCutoff,
		ShowReciprocal:          true,
		ShowNonReciprocal:       true,
		ShowConsistent:          true,
		ShowInconsistent:        true,
		ShowPartiallyConsistent: true,
	}
}

// Validate checks that the cutoff is a percentage.
func (f Filter) Validate() error {
	if f.Cutoff < 0 || f.Cutoff > 100 {
		return fmt.Errorf("cutoff %g out of range [0, 100]", f.Cutoff)
	}
	return nil
}

// Visible reports whether e passes the filter.
func (f Filter) Visible(e synteny.Edge) bool {
	switch e.Kind {
	case synteny.EdgeKindScore:
		if e.Score < f.Cutoff {
			return false
		}
		if e.Reciprocal {
			return f.ShowReciprocal
		}
		return f.ShowNonReciprocal
	case synteny.EdgeKindCategory:
		switch e.Category {
		case synteny.CategoryFullyConsistent:
			return f.ShowConsistent
		case synteny.CategoryInconsistent:
			return f.ShowInconsistent
		case synteny.CategoryPartiallyConsistent:
			return f.ShowPartiallyConsistent
		case synteny.CategoryNonReciprocal:
			return f.ShowNonReciprocal
		}
	}
	return true
}

// Apply returns the visible edges of edges, in order.
func (f Filter) Apply(edges []synteny.Edge) []synteny.Edge {
	out := make([]synteny.Edge, 0, len(edges))
	for _, e := range edges {
		if f.Visible(e) {
			out = append(out, e)
		}
	}
	return out
}
