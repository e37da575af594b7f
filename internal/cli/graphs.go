package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/syntower/pkg/graph"
	"github.com/matzehuels/syntower/pkg/store"
)

// graphsCommand creates the graphs command for managing stored graphs.
func (c *CLI) graphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage stored graphs",
		Long: `Manage graph records in the configured store (store.backend: file,
memory or mongo). Stored graphs are served by the API under /v1/graphs.`,
	}

	cmd.AddCommand(c.graphsListCommand())
	cmd.AddCommand(c.graphsAddCommand())
	cmd.AddCommand(c.graphsShowCommand())
	cmd.AddCommand(c.graphsExportCommand())
	cmd.AddCommand(c.graphsRemoveCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	return fn(st)
}

func (c *CLI) graphsListCommand() *cobra.Command {
	var opts store.ListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored graphs, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				list, err := st.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No stored graphs")
					return nil
				}
				fmt.Println(summaryTable(list))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", store.DefaultListLimit, "maximum number of graphs")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "skip this many graphs")
	return cmd
}

func (c *CLI) graphsAddCommand() *cobra.Command {
	var title, description, domain string

	cmd := &cobra.Command{
		Use:   "add <graph.json|url|->",
		Short: "Store a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := c.loadGraph(ctx, runner, args[0], domain, false)
			if err != nil {
				return err
			}
			rec := store.NewRecord(title, description, g)
			return c.withStore(ctx, func(st store.Store) error {
				if err := st.Create(ctx, rec); err != nil {
					return err
				}
				printSuccess("Stored %s", StyleValue.Render(rec.Title))
				printKeyValue("id", rec.ID)
				printKeyValue("genomes", fmt.Sprint(len(rec.Genomes)))
				printKeyValue("genes", fmt.Sprint(rec.NumGenes))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title (default derived from the genomes)")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "domain to select from a multi-domain document")
	return cmd
}

func (c *CLI) graphsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				rec, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(StyleTitle.Render(rec.Title))
				if rec.Description != "" {
					fmt.Println(StyleDim.Render(rec.Description))
				}
				printKeyValue("id", rec.ID)
				printKeyValue("domain", orDash(rec.Domain))
				printKeyValue("genes", fmt.Sprint(rec.NumGenes))
				printKeyValue("links", fmt.Sprint(len(rec.Graph.Links)))
				printKeyValue("created", rec.CreatedAt.Local().Format(time.DateTime))
				printKeyValue("updated", rec.UpdatedAt.Local().Format(time.DateTime))
				for i, g := range rec.Genomes {
					printKeyValue(fmt.Sprintf("row %d", i), g)
				}
				return nil
			})
		},
	}
}

func (c *CLI) graphsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a stored graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				rec, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return graph.WriteGraph(rec.Graph, os.Stdout)
				}
				if err := graph.WriteGraphFile(rec.Graph, output); err != nil {
					return err
				}
				printSuccess("Exported %s", rec.Title)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) graphsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete stored graphs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						return err
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}

// summaryTable renders stored graph summaries.
func summaryTable(list []store.Summary) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID,
			s.Title,
			fmt.Sprint(len(s.Genomes)),
			fmt.Sprint(s.NumGenes),
			orDash(s.Domain),
			formatRelativeTime(s.CreatedAt, time.Now()),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Genomes", "Genes", "Domain", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0 || col == 5:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}
