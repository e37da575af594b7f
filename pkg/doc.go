// Package pkg provides the core libraries for Syntower synteny diagrams.
//
// # Overview
//
// Syntower draws the gene neighbourhoods of several genomes as rows, one row
// per genome, with homologous genes grouped and colored alike. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (synteny model, diagram engine, view, rendering)
//  2. [graph] - Serialization types for graphs and diagrams
//  3. [pipeline] - Orchestration (decode → build → render) with caching
//  4. [cache], [store] - Infrastructure (artifact cache, graph records)
//  5. [httputil], [source/remote] - Fetching graph documents over HTTP
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON (file, URL or API request)
//	         ↓
//	    [graph] package (decode, select domain, validate)
//	         ↓
//	    [core/diagram] package (normalize rows → group → color)
//	         ↓
//	    [core/view] package (filter, selection, focus, styling)
//	         ↓
//	    [core/render] package (DOT → SVG, PNG, PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/syntower/pkg/core/diagram"
//	    "github.com/matzehuels/syntower/pkg/core/render/rows"
//	    "github.com/matzehuels/syntower/pkg/graph"
//	)
//
//	g, _ := graph.ReadGraphFile("groups.json", "")
//	d := diagram.Build(graph.ToSynteny(g), diagram.Options{})
//	svg, _ := rows.RenderSVG(ctx, rows.ToDOT(d, rows.Options{}))
//
// For cached, multi-format output use [pipeline.Runner].
//
// # Main Packages
//
// [core/synteny] - Graph model (genes, score and category links), the row
// normalizer, the component grouper and the palette.
//
// [core/diagram] - The engine: one call from graph to colored diagram.
//
// [core/view] - Pure functions of a diagram and a selection state: edge
// visibility, focus sets, node and edge styles, row labels.
//
// [core/render] - Row layout as Graphviz DOT, SVG via go-graphviz, PNG and
// PDF via rsvg-convert.
//
// [cache] - File, Redis and null caches behind one interface, with content
// keyed hashing.
//
// [store] - Graph records in memory, on disk or in MongoDB.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for decode, build, render, cache and HTTP events.
package pkg
