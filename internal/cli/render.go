package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntower/pkg/core/render"
	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/view"
	"github.com/matzehuels/syntower/pkg/pipeline"
)

// Edge kinds accepted by --hide.
const (
	hideReciprocal    = "reciprocal"
	hideNonReciprocal = "non-reciprocal"
	hideConsistent    = "consistent"
	hideInconsistent  = "inconsistent"
	hidePartial       = "partial"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string
	formats   string
	domain    string
	cutoff    float64
	hide      []string
	selNodes  []string
	selEdges  []string
	focus     bool
	viewFile  string
	colors    []string
	rowHeight float64
	spacing   float64
	scale     float64
	detailed  bool
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json|url|->",
		Short: "Render a synteny graph as a row diagram",
		Long: `Render a synteny graph as a row diagram, one row per genome plus a
closing row repeating the first genome when there are three or more.

Selections highlight genes and links; with --focus everything outside the
selected groups is dimmed.`,
		Example: `  syntower render groups.json -f svg,png
  syntower render groups.json --cutoff 50 --hide inconsistent
  syntower render groups.json --select ec_dnaA --focus -o dnaA.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.renderOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], popts, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, json, png, pdf (comma-separated)")
	f.StringVarP(&opts.domain, "domain", "d", "", "domain to select from a multi-domain document")
	f.Float64Var(&opts.cutoff, "cutoff", view.DefaultCutoff, "hide score links below this score")
	f.StringSliceVar(&opts.hide, "hide", nil, "hide link kinds: reciprocal, non-reciprocal, consistent, inconsistent, partial")
	f.StringSliceVar(&opts.selNodes, "select", nil, "select genes by ID")
	f.StringSliceVar(&opts.selEdges, "select-link", nil, "select links as source:target")
	f.BoolVar(&opts.focus, "focus", false, "dim everything outside the selection")
	f.StringVar(&opts.viewFile, "view", "", "read the selection from a JSON file (as written by inspect)")
	f.StringSliceVar(&opts.colors, "colors", nil, "palette colors (hex, comma-separated)")
	f.Float64Var(&opts.rowHeight, "row-height", 0, "vertical distance between rows")
	f.Float64Var(&opts.spacing, "spacing", 0, "horizontal distance between genes")
	f.Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	f.BoolVar(&opts.detailed, "detailed", false, "label genes with their IDs")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// renderOptions merges flags over the config file defaults. Flags that were
// not set keep the configured value.
func (c *CLI) renderOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	p := c.baseOptions()
	flags := cmd.Flags()

	if flags.Changed("format") || len(p.Formats) == 0 {
		p.Formats = parseFormats(opts.formats)
	}
	if flags.Changed("cutoff") {
		p.Filter.Cutoff = opts.cutoff
	}
	if err := applyHide(p.Filter, opts.hide); err != nil {
		return p, err
	}
	if flags.Changed("colors") {
		p.Palette.Colors = opts.colors
	}
	if flags.Changed("row-height") {
		p.RowHeight = opts.rowHeight
	}
	if flags.Changed("spacing") {
		p.Spacing = opts.spacing
	}
	if flags.Changed("scale") {
		p.Scale = opts.scale
	}
	if flags.Changed("detailed") {
		p.Detailed = opts.detailed
	}
	p.Refresh = opts.refresh

	sel, err := selection(opts)
	if err != nil {
		return p, err
	}
	p.View = sel
	return p, p.ValidateAndSetDefaults()
}

// applyHide switches off the named edge kinds.
func applyHide(f *view.Filter, kinds []string) error {
	for _, k := range kinds {
		switch strings.TrimSpace(k) {
		case hideReciprocal:
			f.ShowReciprocal = false
		case hideNonReciprocal:
			f.ShowNonReciprocal = false
		case hideConsistent:
			f.ShowConsistent = false
		case hideInconsistent:
			f.ShowInconsistent = false
		case hidePartial:
			f.ShowPartiallyConsistent = false
		default:
			return fmt.Errorf("invalid --hide value %q (want %s)", k,
				strings.Join([]string{hideReciprocal, hideNonReciprocal, hideConsistent, hideInconsistent, hidePartial}, ", "))
		}
	}
	return nil
}

// selection reads --view, then adds --select, --select-link and --focus.
func selection(opts *renderOpts) (view.Selection, error) {
	var sel view.Selection
	if opts.viewFile != "" {
		data, err := os.ReadFile(opts.viewFile)
		if err != nil {
			return sel, fmt.Errorf("read view: %w", err)
		}
		if err := json.Unmarshal(data, &sel); err != nil {
			return sel, fmt.Errorf("parse view %s: %w", opts.viewFile, err)
		}
	}
	for _, id := range opts.selNodes {
		if !slices.Contains(sel.Nodes, id) {
			sel.Nodes = append(sel.Nodes, id)
		}
	}
	for _, s := range opts.selEdges {
		src, tgt, ok := strings.Cut(s, ":")
		if !ok || src == "" || tgt == "" {
			return sel, fmt.Errorf("invalid --select-link %q (want source:target)", s)
		}
		sel.Edges = append(sel.Edges, synteny.Key{Source: src, Target: tgt})
	}
	sel.Focus = sel.Focus || opts.focus
	return sel, nil
}

func (c *CLI) runRender(ctx context.Context, input string, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	if !render.Available() {
		for _, f := range popts.Formats {
			if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
				printWarning("%s output needs rsvg-convert on PATH", f)
			}
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := c.loadGraph(ctx, runner, input, opts.domain, opts.refresh)
	if err != nil {
		return err
	}

	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", strings.Join(popts.Formats, ", ")))
	spin.Start()
	res, err := runner.Execute(ctx, g, popts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, f := range popts.Formats {
		if err := writeOutput(paths[f], res.Artifacts[f]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", paths[f], len(res.Artifacts[f]))
	}
	if opts.output == "-" {
		return nil
	}

	printSuccess("Rendered %s", input)
	for _, f := range popts.Formats {
		printFile(paths[f])
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each format to its file. A single format with an
// explicit output uses it as is; otherwise files are <base>.<format>.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && (output == "-" || filepath.Ext(output) != "") {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
