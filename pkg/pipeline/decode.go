package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/observability"
)

// Load decodes a graph document from src and selects the graph for domain.
// source names the input in logs and hooks.
func (r *Runner) Load(ctx context.Context, src io.Reader, source, domain string) (graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, source)
	start := time.Now()

	g, err := graph.ReadGraph(src, domain)
	hooks.OnDecodeComplete(ctx, source, len(g.Nodes), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, err
	}

	r.Logger.Debug("decoded graph",
		"source", source,
		"domain", g.DomainName,
		"genomes", len(g.Genomes),
		"nodes", len(g.Nodes),
		"links", len(g.Links))
	return g, nil
}

// LoadFile is [Runner.Load] for a file path. "-" reads standard input.
func (r *Runner) LoadFile(ctx context.Context, path, domain string) (graph.Graph, error) {
	if path == "-" {
		return r.Load(ctx, os.Stdin, "stdin", domain)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return r.Load(ctx, f, path, domain)
}
