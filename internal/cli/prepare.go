package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/pipeline"
	"github.com/matzehuels/syntower/pkg/source/remote"
)

type prepareOpts struct {
	output  string
	domain  string
	noCache bool
	refresh bool
	domains bool
}

// prepareCommand creates the prepare command, which builds a diagram and
// writes its JSON form.
func (c *CLI) prepareCommand() *cobra.Command {
	var opts prepareOpts

	cmd := &cobra.Command{
		Use:   "prepare <graph.json|url|->",
		Short: "Build a diagram and write it as JSON",
		Long: `Build a diagram from a synteny graph: add the closing row, retarget
links onto it, group homologous genes and assign colors. The result is the
diagram JSON a client needs to draw the rows without re-running the engine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrepare(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <input>.diagram.json, - for stdout)")
	cmd.Flags().StringVarP(&opts.domain, "domain", "d", "", "domain to select from a multi-domain document")
	cmd.Flags().BoolVar(&opts.domains, "list-domains", false, "list the domains in the document and exit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when cached")

	return cmd
}

func (c *CLI) runPrepare(ctx context.Context, input string, opts prepareOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.domains {
		return c.listDomains(ctx, runner, input, opts.refresh)
	}

	g, err := c.loadGraph(ctx, runner, input, opts.domain, opts.refresh)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	popts := c.baseOptions()
	popts.Refresh = opts.refresh
	d, hit, err := runner.Diagram(ctx, g, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built diagram: %d rows, %d groups", len(d.Rows), d.Stats.Components))

	data, err := graph.MarshalDiagram(d)
	if err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = basePath("", input) + ".diagram.json"
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	if out == "-" {
		return nil
	}

	printSuccess("Prepared %s", input)
	printFile(out)
	status := "fresh"
	if hit {
		status = "cached"
	}
	printDetail("%d genes · %d duplicates · %d retargeted · %d dropped · %s",
		len(d.Nodes), d.Stats.DuplicatesAdded, d.Stats.EdgesRetargeted, d.Stats.SameGenomeDropped, status)
	if d.Stats.Dangling > 0 {
		printWarning("%d links reference unknown genes", d.Stats.Dangling)
	}
	return nil
}

// listDomains prints the domain names of a document.
func (c *CLI) listDomains(ctx context.Context, runner *pipeline.Runner, input string, refresh bool) error {
	var names []string
	var err error
	if remote.IsURL(input) {
		names, err = c.newSource(runner).Domains(ctx, input, refresh)
	} else {
		names, err = fileDomains(input)
	}
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == "" {
			n = "(unnamed)"
		}
		fmt.Println(n)
	}
	return nil
}

func fileDomains(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	graphs, err := graph.Decode(r)
	if err != nil {
		return nil, err
	}
	return graph.Domains(graphs), nil
}
