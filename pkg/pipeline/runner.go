package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntower/pkg/cache"
	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no pipeline results; multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute builds the diagram for g and renders every requested format.
// When all artifacts are cached the build is skipped.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	graphHash, err := HashGraph(g)
	if err != nil {
		return nil, err
	}
	result := &Result{
		GraphHash: graphHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Genomes = len(g.Genomes)
	result.Stats.NodeCount = len(g.Nodes)

	diagramHash := cache.Hash([]byte(r.Keyer.DiagramKey(graphHash, opts.DiagramKeyOpts(g.DomainName))))
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
	}

	if !opts.Refresh && r.allCached(ctx, keys, result.Artifacts) {
		result.CacheInfo.RenderHit = true
		r.Logger.Info("served from cache", "formats", opts.Formats)
		return result, nil
	}
	clear(result.Artifacts)

	// Build
	buildStart := time.Now()
	d := Build(ctx, g, opts)
	result.Diagram = d
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.EdgeCount = len(d.Edges)
	result.Stats.Duplicates = d.Stats.DuplicatesAdded
	result.Stats.Components = d.Stats.Components
	result.Stats.Colorable = len(d.Colorable)

	r.Logger.Info("built diagram",
		"genomes", len(d.Genomes),
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"components", d.Stats.Components,
		"colorable", len(d.Colorable),
		"duration", result.Stats.BuildTime)
	if d.Stats.Dangling > 0 {
		r.Logger.Warn("links reference unknown genes", "count", d.Stats.Dangling)
	}

	// Render
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(ctx, d, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		r.cacheSet(ctx, "artifact", keys[format], data, cache.TTLArtifact)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) allCached(ctx context.Context, keys map[string]string, into map[string][]byte) bool {
	for format, key := range keys {
		data, ok := r.cacheGet(ctx, "artifact", key)
		if !ok {
			return false
		}
		into[format] = data
	}
	return true
}

// cacheGet reads key and reports the hit or miss to the cache hooks. Backend
// errors are logged and treated as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
