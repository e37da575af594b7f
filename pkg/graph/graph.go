package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/syntower/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the graph for domain.
// See [ReadGraph] for how domain is resolved.
func ReadGraphFile(path, domain string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, domain)
}

// ReadGraph decodes a graph document from r, selects the graph for domain
// and validates it.
//
// A document is either a single graph object or an array of per-domain
// graphs. For an array, an empty domain selects the combined graph
// ("ALL", then "general"), falling back to the first entry.
func ReadGraph(r io.Reader, domain string) (Graph, error) {
	graphs, err := Decode(r)
	if err != nil {
		return Graph{}, err
	}
	g, err := Select(graphs, domain)
	if err != nil {
		return Graph{}, err
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a validated Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data), "")
}

// Decode reads a graph document without validating it.
func Decode(r io.Reader) ([]Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty graph document")
	}

	if data[0] == '[' {
		var graphs []Graph
		if err := json.Unmarshal(data, &graphs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
		}
		return graphs, nil
	}
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return []Graph{g}, nil
}

// Select picks the graph for domain from a decoded document.
func Select(graphs []Graph, domain string) (Graph, error) {
	if len(graphs) == 0 {
		return Graph{}, errors.New(errors.ErrCodeInvalidGraph, "document contains no graphs")
	}
	if domain == "" {
		if len(graphs) == 1 {
			return graphs[0], nil
		}
		for _, want := range []string{DomainAll, DomainGeneral} {
			for _, g := range graphs {
				if g.DomainName == want {
					return g, nil
				}
			}
		}
		return graphs[0], nil
	}
	for _, g := range graphs {
		if g.DomainName == domain {
			return g, nil
		}
	}
	return Graph{}, errors.New(errors.ErrCodeDomainNotFound, "no graph for domain %q", domain)
}

// Domains lists the domain names of a decoded document, in document order.
func Domains(graphs []Graph) []string {
	out := make([]string, 0, len(graphs))
	for _, g := range graphs {
		out = append(out, g.DomainName)
	}
	return out
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	if g.Genomes == nil {
		g.Genomes = []string{}
	}
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Links == nil {
		g.Links = []Link{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
