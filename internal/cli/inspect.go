package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/syntower/pkg/pipeline"
)

type inspectOpts struct {
	domain  string
	save    string
	list    bool
	noCache bool
	refresh bool
	render  renderOpts
}

// inspectCommand creates the inspect command: an interactive browser over
// the groups of a diagram that writes the chosen selection as a view file.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <graph.json|url|->",
		Short: "Browse groups and pick a selection interactively",
		Long: `Browse the groups of a diagram, select genes and toggle focus mode.
Press w to save the selection as a view file, which render reads with --view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.domain, "domain", "d", "", "domain to select from a multi-domain document")
	f.StringVar(&opts.save, "save", "", "view file to write (default <input>.view.json)")
	f.StringVar(&opts.render.viewFile, "view", "", "start from a saved view file")
	f.BoolVar(&opts.list, "list", false, "print the group table and exit")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "refetch remote documents")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, opts *inspectOpts) error {
	ctx := cmd.Context()

	popts, err := c.renderOptions(cmd, &opts.render)
	if err != nil {
		return err
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
	d := pipeline.Build(ctx, g, popts)
	model := NewComponentModel(d, *popts.Filter, popts.View.State(d))

	if opts.list {
		fmt.Println(componentTable(d, model.roots, -1, model.State.NodeSelected))
		return nil
	}

	final, err := runProgram(ctx, model)
	if err != nil {
		return err
	}
	if !final.Saved {
		return nil
	}

	path := opts.save
	if path == "" {
		path = basePath("", input) + ".view.json"
	}
	data, err := json.MarshalIndent(final.Selection(), "", "  ")
	if err != nil {
		return err
	}
	if err := writeOutput(path, append(data, '\n')); err != nil {
		return err
	}
	printSuccess("Saved view")
	printFile(path)
	printDetail("render with: %s render %s --view %s", appName, input, path)
	return nil
}

// runProgram runs the browser until the user quits or ctx ends.
func runProgram(ctx context.Context, m ComponentModel) (ComponentModel, error) {
	res, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return m, fmt.Errorf("inspect: %w", err)
	}
	final, ok := res.(ComponentModel)
	if !ok {
		return m, fmt.Errorf("inspect: unexpected model %T", res)
	}
	return final, nil
}
