// Package pipeline provides the decode → build → render pipeline shared by
// the CLI and the API server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read a graph document and select the graph for a domain
//  2. Build: normalize rows, group components and assign colors
//  3. Render: produce artifacts (SVG, DOT, diagram JSON, PNG, PDF)
//
// Rendered artifacts are cached by graph content and options, so repeated
// requests for the same picture skip both build and render.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := runner.LoadFile(ctx, "graph.json", "")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/syntower/pkg/cache"
	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/render/rows"
	"github.com/matzehuels/syntower/pkg/core/synteny/palette"
	"github.com/matzehuels/syntower/pkg/core/view"
	"github.com/matzehuels/syntower/pkg/errors"
	"github.com/matzehuels/syntower/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the PNG zoom factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatDOT:  "text/vnd.graphviz",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It is decoded directly from API
// request bodies.
type Options struct {
	// Build options
	Palette palette.Palette `json:"palette,omitzero"`

	// Render options
	Formats   []string       `json:"formats,omitempty"`
	Filter    *view.Filter   `json:"filter,omitempty"` // nil means view.DefaultFilter()
	View      view.Selection `json:"view,omitzero"`
	RowHeight float64        `json:"row_height,omitempty"`
	Spacing   float64        `json:"spacing,omitempty"`
	Detailed  bool           `json:"detailed,omitempty"`
	Scale     float64        `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the built diagram. It is nil when every artifact came from
	// the cache.
	Diagram *diagram.Diagram

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Genomes    int
	NodeCount  int
	EdgeCount  int
	Duplicates int
	Components int
	Colorable  int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	DiagramHit bool // exported diagram came from cache (Runner.Diagram)
	RenderHit  bool // every requested artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: svg, dot, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Filter == nil {
		f := view.DefaultFilter()
		o.Filter = &f
	}
	if err := o.Filter.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "filter")
	}
	if o.RowHeight < 0 || o.Spacing < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "row_height, spacing and scale must not be negative")
	}
	if o.RowHeight == 0 {
		o.RowHeight = rows.DefaultRowHeight
	}
	if o.Spacing == 0 {
		o.Spacing = rows.DefaultSpacing
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DiagramOptions returns the options for [diagram.Build].
func (o *Options) DiagramOptions() diagram.Options {
	return diagram.Options{Palette: o.Palette, Logger: o.Logger}
}

// RowOptions returns the renderer options for d.
func (o *Options) RowOptions(d *diagram.Diagram) rows.Options {
	return rows.Options{
		RowHeight: o.RowHeight,
		Spacing:   o.Spacing,
		Filter:    *o.Filter,
		State:     o.View.State(d),
		Detailed:  o.Detailed,
	}
}

// DiagramKeyOpts returns cache key options for the built diagram.
func (o *Options) DiagramKeyOpts(domain string) cache.DiagramKeyOpts {
	p := o.Palette.WithDefaults()
	return cache.DiagramKeyOpts{
		Domain:    domain,
		Colors:    p.Colors,
		Absent:    p.Absent,
		Ungrouped: p.Ungrouped,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatJSON {
		return opts
	}
	opts.ViewHash, _ = cache.HashJSON(struct {
		Filter *view.Filter   `json:"filter"`
		View   view.Selection `json:"view"`
	}{o.Filter, o.View})
	opts.RowHeight = o.RowHeight
	opts.Spacing = o.Spacing
	opts.Detailed = o.Detailed
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// HashGraph returns the content hash of g.
func HashGraph(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}
	return cache.Hash(data), nil
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
