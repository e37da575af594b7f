package cache

import "fmt"

// Keyer generates cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// HTTPKey keys a raw HTTP response body.
	HTTPKey(namespace, key string) string

	// DiagramKey keys a built diagram by the hash of its input graph.
	DiagramKey(graphHash string, opts DiagramKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts holds the options that change a built diagram.
type DiagramKeyOpts struct {
	Domain    string   `json:"domain,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Absent    string   `json:"absent,omitempty"`
	Ungrouped string   `json:"ungrouped,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
// ViewHash covers the edge filter and the selection state.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	ViewHash  string  `json:"view_hash,omitempty"`
	RowHeight float64 `json:"row_height,omitempty"`
	Spacing   float64 `json:"spacing,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(graphHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

var _ Keyer = DefaultKeyer{}
