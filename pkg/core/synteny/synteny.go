package synteny

import (
	"slices"
	"strings"
)

// DuplicateSuffix is appended to an original node ID to form the ID of its
// closing-row duplicate.
const DuplicateSuffix = "__dup"

// Gene directions.
const (
	DirectionPlus  = "plus"
	DirectionMinus = "minus"
)

// Node is a gene placed on a genome row.
//
// Present is optional on the wire: a nil Present means the gene is present.
// Duplicate is never read from input; it is set only on the clones created by
// row normalization.
type Node struct {
	ID        string
	Genome    string
	Protein   string
	Direction string
	Position  float64
	Present   *bool
	GeneType  string

	// Domains holds per-domain coordinates keyed by the original column name
	// (e.g. "domain1_start"). A nil value records a missing coordinate.
	Domains map[string]*float64

	Duplicate bool
}

// IsPresent reports whether the gene is present in its genome.
func (n Node) IsPresent() bool { return n.Present == nil || *n.Present }

// Clone returns a copy of n that does not share the Present pointer or the
// Domains map with n.
func (n Node) Clone() Node {
	out := n
	if n.Present != nil {
		p := *n.Present
		out.Present = &p
	}
	if n.Domains != nil {
		out.Domains = make(map[string]*float64, len(n.Domains))
		for k, v := range n.Domains {
			if v == nil {
				out.Domains[k] = nil
				continue
			}
			c := *v
			out.Domains[k] = &c
		}
	}
	return out
}

// EdgeKind tags the variant of an [Edge].
type EdgeKind int

const (
	// EdgeKindScore is a similarity edge with a score and reciprocity flag.
	EdgeKindScore EdgeKind = iota
	// EdgeKindCategory is a cross-domain consistency edge.
	EdgeKindCategory
)

// String returns "score" or "category".
func (k EdgeKind) String() string {
	if k == EdgeKindCategory {
		return "category"
	}
	return "score"
}

// Category is the relation type of a category edge.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryFullyConsistent: consistent across all domains.
	CategoryFullyConsistent
	// CategoryInconsistent: contradicting domains.
	CategoryInconsistent
	// CategoryPartiallyConsistent: consistent, but some domains are missing.
	CategoryPartiallyConsistent
	// CategoryNonReciprocal: a one-directional match.
	CategoryNonReciprocal
)

// Wire names for categories.
const (
	LinkTypeSolidColor  = "solid_color"
	LinkTypeSolidRed    = "solid_red"
	LinkTypeDottedColor = "dotted_color"
	LinkTypeDottedGrey  = "dotted_grey"
	LinkTypeDottedGray  = "dotted_gray"
)

// ParseCategory maps a wire link type to a Category. Unrecognized values map
// to CategoryUnknown.
func ParseCategory(linkType string) Category {
	switch linkType {
	case LinkTypeSolidColor:
		return CategoryFullyConsistent
	case LinkTypeSolidRed:
		return CategoryInconsistent
	case LinkTypeDottedColor:
		return CategoryPartiallyConsistent
	case LinkTypeDottedGrey, LinkTypeDottedGray:
		return CategoryNonReciprocal
	default:
		return CategoryUnknown
	}
}

// LinkType returns the canonical wire name of c, or "" for CategoryUnknown.
func (c Category) LinkType() string {
	switch c {
	case CategoryFullyConsistent:
		return LinkTypeSolidColor
	case CategoryInconsistent:
		return LinkTypeSolidRed
	case CategoryPartiallyConsistent:
		return LinkTypeDottedColor
	case CategoryNonReciprocal:
		return LinkTypeDottedGrey
	default:
		return ""
	}
}

// ColorBearing reports whether edges of this category take their endpoint's
// component color.
func (c Category) ColorBearing() bool {
	return c == CategoryFullyConsistent || c == CategoryPartiallyConsistent
}

// Dotted reports whether edges of this category are drawn dashed.
func (c Category) Dotted() bool {
	return c == CategoryPartiallyConsistent || c == CategoryNonReciprocal
}

// Describe returns a human-readable description used in tooltips.
func (c Category) Describe() string {
	switch c {
	case CategoryFullyConsistent:
		return "Consistent Across Domains"
	case CategoryInconsistent:
		return "Inconsistent Across Domains"
	case CategoryPartiallyConsistent:
		return "Consistent, but May Have Missing Domains"
	case CategoryNonReciprocal:
		return "Non-Reciprocal Connection"
	default:
		return "Unknown Link Type"
	}
}

// Edge relates two genes. Which payload fields are meaningful depends on Kind:
// Score and Reciprocal for EdgeKindScore, Category (and the raw LinkType it
// was parsed from) for EdgeKindCategory.
type Edge struct {
	Source string
	Target string
	Kind   EdgeKind

	Score      float64
	Reciprocal bool

	Category Category
	LinkType string
}

// ScoreEdge builds a score edge.
func ScoreEdge(source, target string, score float64, reciprocal bool) Edge {
	return Edge{Source: source, Target: target, Kind: EdgeKindScore, Score: score, Reciprocal: reciprocal}
}

// CategoryEdge builds a category edge from its wire link type.
func CategoryEdge(source, target, linkType string) Edge {
	return Edge{Source: source, Target: target, Kind: EdgeKindCategory, Category: ParseCategory(linkType), LinkType: linkType}
}

// Strong reports whether the edge groups its endpoints into one component:
// reciprocal score edges and color-bearing category edges.
func (e Edge) Strong() bool {
	switch e.Kind {
	case EdgeKindScore:
		return e.Reciprocal
	case EdgeKindCategory:
		return e.Category.ColorBearing()
	default:
		return false
	}
}

// Key identifies an edge by its endpoints.
type Key struct {
	Source string `json:"source" toml:"source"`
	Target string `json:"target" toml:"target"`
}

// Key returns the endpoint pair of e.
func (e Edge) Key() Key { return Key{Source: e.Source, Target: e.Target} }

// String renders the key as "source-target".
func (k Key) String() string { return k.Source + "-" + k.Target }

// Graph is the raw multi-genome relation graph.
type Graph struct {
	Genomes []string
	Nodes   []Node
	Edges   []Edge
	Domain  string
}

// Empty reports whether the graph has nothing to draw.
func (g *Graph) Empty() bool { return g == nil || len(g.Genomes) == 0 }

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Genomes: slices.Clone(g.Genomes),
		Nodes:   make([]Node, len(g.Nodes)),
		Edges:   slices.Clone(g.Edges),
		Domain:  g.Domain,
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	return out
}

// RowIndex returns the row of each genome name.
func RowIndex(genomes []string) map[string]int {
	rows := make(map[string]int, len(genomes))
	for i, name := range genomes {
		if _, ok := rows[name]; !ok {
			rows[name] = i
		}
	}
	return rows
}

// Row returns the diagram row of n: len(genomes) for duplicates, the genome's
// index otherwise, and -1 when the genome is not listed.
func Row(n Node, rows map[string]int, genomeCount int) int {
	if n.Duplicate {
		return genomeCount
	}
	if r, ok := rows[n.Genome]; ok {
		return r
	}
	return -1
}

// RowCount returns the number of drawn rows: one per genome plus the closing
// row when duplication applies.
func RowCount(genomeCount int) int {
	if Duplicates(genomeCount) {
		return genomeCount + 1
	}
	return genomeCount
}

// Duplicates reports whether first-row duplication applies for genomeCount
// genomes. With two genomes every edge is already row-adjacent.
func Duplicates(genomeCount int) bool { return genomeCount > 2 }

// OriginalID strips DuplicateSuffix once from id.
func OriginalID(id string) (string, bool) {
	return strings.CutSuffix(id, DuplicateSuffix)
}

// NormalizeDirection maps the orientation spellings accepted by coordinate
// files onto DirectionPlus / DirectionMinus. Other values are returned
// lower-cased and trimmed.
func NormalizeDirection(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "+", "positive", DirectionPlus:
		return DirectionPlus
	case "-", "negative", DirectionMinus:
		return DirectionMinus
	default:
		return v
	}
}
