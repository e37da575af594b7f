package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/errors"
)

// Domain names the backend uses for the combined graph of a multi-domain
// document, in order of preference.
const (
	DomainAll     = "ALL"
	DomainGeneral = "general"
)

// =============================================================================
// Graph - Synteny Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for synteny graphs.
// Used for input files, API requests, storage, and cache keys.
//
// The field names match what the parsing backend emits, so its output can be
// fed in unchanged.
type Graph struct {
	Genomes    []string `json:"genomes" bson:"genomes"`
	Nodes      []Node   `json:"nodes" bson:"nodes"`
	Links      []Link   `json:"links" bson:"links"`
	DomainName string   `json:"domain_name,omitempty" bson:"domain_name,omitempty"`
}

// =============================================================================
// Node - Gene
// =============================================================================

// Node is a gene on a genome row.
//
// On the wire, domain coordinates are flat keys next to the other fields
// (e.g. "domain1_start": 12, "domain1_end": null). They are collected into
// Domains when decoding and flattened again when encoding.
type Node struct {
	ID          string              `json:"id" bson:"id"`
	GenomeName  string              `json:"genome_name" bson:"genome_name"`
	ProteinName string              `json:"protein_name" bson:"protein_name"`
	Direction   string              `json:"direction" bson:"direction"`
	RelPosition float64             `json:"rel_position" bson:"rel_position"`
	IsPresent   *bool               `json:"is_present,omitempty" bson:"is_present,omitempty"`
	GeneType    string              `json:"gene_type,omitempty" bson:"gene_type,omitempty"`
	Domains     map[string]*float64 `json:"-" bson:"domains,omitempty"`
}

// IsDomainKey reports whether a wire key holds a domain coordinate.
func IsDomainKey(key string) bool {
	return strings.Contains(key, "domain") &&
		(strings.HasSuffix(key, "_start") || strings.HasSuffix(key, "_end"))
}

type plainNode Node

// MarshalJSON flattens Domains into the node object.
func (n Node) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(plainNode(n))
	if err != nil || len(n.Domains) == 0 {
		return base, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range n.Domains {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// UnmarshalJSON collects domain coordinate keys into Domains.
func (n *Node) UnmarshalJSON(data []byte) error {
	var p plainNode
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for k, raw := range fields {
		if !IsDomainKey(k) {
			continue
		}
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("node %s: %s: %w", p.ID, k, err)
		}
		if p.Domains == nil {
			p.Domains = make(map[string]*float64)
		}
		p.Domains[k] = v
	}
	*n = Node(p)
	return nil
}

// =============================================================================
// Link - Score or Category Relation
// =============================================================================

// Link relates two genes. A link with a LinkType is a category link;
// otherwise it is a score link carrying Score and IsReciprocal.
type Link struct {
	Source       string   `json:"source" bson:"source"`
	Target       string   `json:"target" bson:"target"`
	Score        *float64 `json:"score,omitempty" bson:"score,omitempty"`
	IsReciprocal *bool    `json:"is_reciprocal,omitempty" bson:"is_reciprocal,omitempty"`
	LinkType     string   `json:"link_type,omitempty" bson:"link_type,omitempty"`
}

// IsCategory reports whether l is a category link.
func (l Link) IsCategory() bool { return l.LinkType != "" }

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural rules the engine relies on: genome names are
// non-empty and distinct, node IDs are non-empty and distinct, and every link
// names both endpoints and carries either a score or a link type.
//
// Links to unknown nodes and nodes of unlisted genomes are allowed; the
// engine keeps and reports them.
func (g Graph) Validate() error {
	seenGenome := make(map[string]bool, len(g.Genomes))
	for _, name := range g.Genomes {
		if err := errors.ValidateName("genome", name); err != nil {
			return err
		}
		if seenGenome[name] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate genome: %s", name)
		}
		seenGenome[name] = true
	}

	seenNode := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has no id", i)
		}
		if seenNode[n.ID] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id: %s", n.ID)
		}
		seenNode[n.ID] = true
	}

	for i, l := range g.Links {
		if l.Source == "" || l.Target == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "link %d is missing an endpoint", i)
		}
		if !l.IsCategory() && l.Score == nil {
			return errors.New(errors.ErrCodeInvalidGraph, "link %s-%s has neither score nor link_type", l.Source, l.Target)
		}
	}
	return nil
}

// =============================================================================
// Graph ↔ synteny.Graph Conversion
// =============================================================================

// ToSynteny converts a Graph to the engine's representation. Directions are
// normalized to "plus"/"minus".
func ToSynteny(g Graph) *synteny.Graph {
	out := &synteny.Graph{
		Genomes: slices.Clone(g.Genomes),
		Nodes:   make([]synteny.Node, len(g.Nodes)),
		Edges:   make([]synteny.Edge, len(g.Links)),
		Domain:  g.DomainName,
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = synteny.Node{
			ID:        n.ID,
			Genome:    n.GenomeName,
			Protein:   n.ProteinName,
			Direction: synteny.NormalizeDirection(n.Direction),
			Position:  n.RelPosition,
			Present:   copyBool(n.IsPresent),
			GeneType:  n.GeneType,
			Domains:   copyDomains(n.Domains),
		}
	}
	for i, l := range g.Links {
		out.Edges[i] = edgeFromLink(l)
	}
	return out
}

// FromSynteny converts an engine graph back to its serialization format.
func FromSynteny(g *synteny.Graph) Graph {
	out := Graph{
		Genomes:    slices.Clone(g.Genomes),
		Nodes:      make([]Node, len(g.Nodes)),
		Links:      make([]Link, len(g.Edges)),
		DomainName: g.Domain,
	}
	if out.Genomes == nil {
		out.Genomes = []string{}
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = nodeFromSynteny(n)
	}
	for i, e := range g.Edges {
		out.Links[i] = linkFromEdge(e)
	}
	return out
}

func edgeFromLink(l Link) synteny.Edge {
	if l.IsCategory() {
		return synteny.CategoryEdge(l.Source, l.Target, l.LinkType)
	}
	var score float64
	if l.Score != nil {
		score = *l.Score
	}
	return synteny.ScoreEdge(l.Source, l.Target, score, l.IsReciprocal != nil && *l.IsReciprocal)
}

func linkFromEdge(e synteny.Edge) Link {
	l := Link{Source: e.Source, Target: e.Target}
	switch e.Kind {
	case synteny.EdgeKindCategory:
		l.LinkType = e.LinkType
		if l.LinkType == "" {
			l.LinkType = e.Category.LinkType()
		}
	default:
		score, recip := e.Score, e.Reciprocal
		l.Score = &score
		l.IsReciprocal = &recip
	}
	return l
}

func nodeFromSynteny(n synteny.Node) Node {
	return Node{
		ID:          n.ID,
		GenomeName:  n.Genome,
		ProteinName: n.Protein,
		Direction:   n.Direction,
		RelPosition: n.Position,
		IsPresent:   copyBool(n.Present),
		GeneType:    n.GeneType,
		Domains:     copyDomains(n.Domains),
	}
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// copyDomains deep-copies domain coordinates to avoid aliasing.
func copyDomains(m map[string]*float64) map[string]*float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]*float64, len(m))
	for k, p := range m {
		if p == nil {
			out[k] = nil
			continue
		}
		v := *p
		out[k] = &v
	}
	return out
}
