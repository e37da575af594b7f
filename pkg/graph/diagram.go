package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/view"
)

// =============================================================================
// Diagram - Normalized, Colored Graph
// =============================================================================

// Diagram is the serialization format for a built diagram: the normalized
// graph plus everything a client needs to draw it without re-running the
// engine.
//
//   - Nodes: originals followed by closing-row duplicates, each with its row
//   - Links: normalized links (retargeted, same-genome links removed)
//   - Rows: one label per drawn row
//   - Colors: node ID → display color
//   - Components: node ID → component root
//   - Colorable: colorable component roots in palette order
type Diagram struct {
	Genomes    []string          `json:"genomes" bson:"genomes"`
	Rows       []string          `json:"rows" bson:"rows"`
	Nodes      []DiagramNode     `json:"nodes" bson:"nodes"`
	Links      []Link            `json:"links" bson:"links"`
	Colors     map[string]string `json:"colors" bson:"colors"`
	Components map[string]string `json:"components" bson:"components"`
	Colorable  []string          `json:"colorable" bson:"colorable"`
	DomainName string            `json:"domain_name,omitempty" bson:"domain_name,omitempty"`
	Stats      DiagramStats      `json:"stats" bson:"stats"`
}

// DiagramNode is a [Node] placed on a diagram row.
type DiagramNode struct {
	Node      `bson:",inline"`
	Row       int  `json:"row" bson:"row"`
	Duplicate bool `json:"duplicate,omitempty" bson:"duplicate,omitempty"`
}

// MarshalJSON adds row and duplicate to the flattened node object. Without
// it the promoted [Node.MarshalJSON] would drop them.
func (n DiagramNode) MarshalJSON() ([]byte, error) {
	base, err := n.Node.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	fields["row"], _ = json.Marshal(n.Row)
	if n.Duplicate {
		fields["duplicate"] = json.RawMessage("true")
	}
	return json.Marshal(fields)
}

// UnmarshalJSON is the inverse of [DiagramNode.MarshalJSON].
func (n *DiagramNode) UnmarshalJSON(data []byte) error {
	if err := n.Node.UnmarshalJSON(data); err != nil {
		return err
	}
	var extra struct {
		Row       int  `json:"row"`
		Duplicate bool `json:"duplicate"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	n.Row, n.Duplicate = extra.Row, extra.Duplicate
	return nil
}

// DiagramStats reports what normalization changed.
type DiagramStats struct {
	DuplicatesAdded   int `json:"duplicates_added" bson:"duplicates_added"`
	EdgesRetargeted   int `json:"edges_retargeted" bson:"edges_retargeted"`
	SameGenomeDropped int `json:"same_genome_dropped" bson:"same_genome_dropped"`
	Dangling          int `json:"dangling" bson:"dangling"`
	Components        int `json:"components" bson:"components"`
}

// ExportDiagram converts a built diagram to its serialization format.
func ExportDiagram(d *diagram.Diagram) Diagram {
	out := Diagram{
		Genomes:    append([]string{}, d.Genomes...),
		Rows:       view.RowLabels(d.Genomes),
		Nodes:      make([]DiagramNode, len(d.Nodes)),
		Links:      make([]Link, len(d.Edges)),
		Colors:     make(map[string]string, len(d.Colors)),
		Components: make(map[string]string, len(d.Nodes)),
		Colorable:  append([]string{}, d.Colorable...),
		DomainName: d.Domain,
		Stats: DiagramStats{
			DuplicatesAdded:   d.Stats.DuplicatesAdded,
			EdgesRetargeted:   d.Stats.EdgesRetargeted,
			SameGenomeDropped: d.Stats.SameGenomeDropped,
			Dangling:          d.Stats.Dangling,
			Components:        d.Stats.Components,
		},
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = DiagramNode{Node: nodeFromSynteny(n), Row: d.Row(n.ID), Duplicate: n.Duplicate}
		if root, ok := d.Find(n.ID); ok {
			out.Components[n.ID] = root
		}
	}
	for i, e := range d.Edges {
		out.Links[i] = linkFromEdge(e)
	}
	for k, v := range d.Colors {
		out.Colors[k] = v
	}
	return out
}

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram serializes a Diagram to pretty-printed JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDiagram deserializes JSON bytes into a Diagram.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	return d, nil
}

// WriteDiagramFile writes a Diagram to a JSON file.
func WriteDiagramFile(d Diagram, path string) error {
	data, err := MarshalDiagram(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDiagramFile reads a Diagram from a JSON file.
func ReadDiagramFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDiagram(data)
}
