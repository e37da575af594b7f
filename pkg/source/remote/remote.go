// Package remote fetches graph documents over HTTP.
//
// The parsing backend serves graph JSON for uploaded genome sets; this
// package reads such documents by URL so the CLI and the API can render
// them without a local copy.
//
//	src := remote.New(httputil.NewClient(c, nil))
//	g, err := src.Graph(ctx, "https://backend.example.org/groups/42/graph", "", false)
package remote

import (
	"bytes"
	"context"
	"strings"

	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/httputil"
)

// Namespace is the HTTP cache namespace for graph documents.
const Namespace = "graph"

// Source reads graph documents through an [httputil.Client].
type Source struct {
	client *httputil.Client
}

// New returns a source using client. A nil client fetches without caching.
func New(client *httputil.Client) *Source {
	if client == nil {
		client = httputil.NewClient(nil, nil)
	}
	return &Source{client: client}
}

// IsURL reports whether ref names a remote document.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch returns the raw document at url.
func (s *Source) Fetch(ctx context.Context, url string, refresh bool) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	return s.client.Fetch(ctx, Namespace, url, refresh)
}

// Graph fetches the document at url and selects the graph for domain.
func (s *Source) Graph(ctx context.Context, url, domain string, refresh bool) (graph.Graph, error) {
	data, err := s.Fetch(ctx, url, refresh)
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.ReadGraph(bytes.NewReader(data), domain)
}

// Domains lists the domains offered by the document at url.
func (s *Source) Domains(ctx context.Context, url string, refresh bool) ([]string, error) {
	data, err := s.Fetch(ctx, url, refresh)
	if err != nil {
		return nil, err
	}
	graphs, err := graph.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return graph.Domains(graphs), nil
}
