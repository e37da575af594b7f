package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/syntower/pkg/cache"
	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/observability"
)

// Build runs the engine on g. It never fails; an empty graph yields an
// empty diagram.
func Build(ctx context.Context, g graph.Graph, opts Options) *diagram.Diagram {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(g.Genomes), len(g.Nodes))
	start := time.Now()

	d := diagram.Build(graph.ToSynteny(g), opts.DiagramOptions())

	hooks.OnBuildComplete(ctx, d.Stats.Components, time.Since(start), nil)
	return d
}

// Diagram returns the exported diagram for g, served from the cache when
// possible.
func (r *Runner) Diagram(ctx context.Context, g graph.Graph, opts Options) (graph.Diagram, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Diagram{}, false, err
	}

	graphHash, err := HashGraph(g)
	if err != nil {
		return graph.Diagram{}, false, err
	}
	key := r.Keyer.DiagramKey(graphHash, opts.DiagramKeyOpts(g.DomainName))

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, "diagram", key); ok {
			if cached, err := graph.UnmarshalDiagram(data); err == nil {
				return cached, true, nil
			}
		}
	}

	exported := graph.ExportDiagram(Build(ctx, g, opts))
	if data, err := graph.MarshalDiagram(exported); err == nil {
		r.cacheSet(ctx, "diagram", key, data, cache.TTLDiagram)
	}
	return exported, false, nil
}
