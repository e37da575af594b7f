package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/render"
	"github.com/matzehuels/syntower/pkg/core/render/rows"
	"github.com/matzehuels/syntower/pkg/graph"
)

// Render generates the requested artifacts for d. The DOT source and the SVG
// are produced at most once and shared by the formats derived from them.
func Render(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var (
		dot string
		svg []byte
	)
	dotSource := func() string {
		if dot == "" {
			dot = rows.ToDOT(d, opts.RowOptions(d))
		}
		return dot
	}
	svgImage := func() ([]byte, error) {
		if svg == nil {
			var err error
			if svg, err = rows.RenderSVG(ctx, dotSource()); err != nil {
				return nil, err
			}
		}
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = svgImage()
		case FormatPNG:
			if data, err = svgImage(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgImage(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalDiagram(graph.ExportDiagram(d))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
