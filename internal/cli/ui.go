package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary actions
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSwatch  = "■"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Diagram Output
// =============================================================================

// statsLine summarizes a pipeline run on one line.
func statsLine(s pipeline.Stats, cached bool) string {
	var parts []string
	if s.Genomes > 0 {
		parts = append(parts, fmt.Sprintf("%d genomes", s.Genomes))
	}
	if s.NodeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d genes", s.NodeCount))
	}
	if s.EdgeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d links", s.EdgeCount))
	}
	if s.Components > 0 {
		parts = append(parts, fmt.Sprintf("%d groups (%d colored)", s.Components, s.Colorable))
	}

	status := styleComputed.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	for i := range parts {
		parts[i] = StyleDim.Render(parts[i])
	}
	parts = append(parts, status)
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(s pipeline.Stats, cached bool) {
	fmt.Println(statsLine(s, cached))
}

// swatch renders a colored block for a hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(iconSwatch)
}

// componentRows lists the components of d in display order: colorable
// groups in palette order, then the remaining roots.
func componentRows(d *diagram.Diagram) []string {
	seen := make(map[string]bool, len(d.Colorable))
	out := make([]string, 0, len(d.Roots()))
	for _, root := range d.Colorable {
		seen[root] = true
		out = append(out, root)
	}
	for _, root := range d.Roots() {
		if !seen[root] {
			out = append(out, root)
		}
	}
	return out
}

// componentTable renders one table row per component.
func componentTable(d *diagram.Diagram, roots []string, cursor int, selected func(root string) bool) string {
	rows := make([][]string, 0, len(roots))
	for i, root := range roots {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		sel := ""
		if selected != nil && selected(root) {
			sel = "●"
		}
		color, _ := d.Color(root)
		rows = append(rows, []string{
			marker,
			sel,
			swatch(color) + " " + color,
			root,
			fmt.Sprint(d.ComponentSize(root)),
			strings.Join(componentGenomes(d, root), ", "),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Color", "Root", "Genes", "Genomes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row == cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if !d.IsColorable(roots[row]) {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// componentGenomes lists the genomes covered by root's component, in row
// order, without the closing row.
func componentGenomes(d *diagram.Diagram, root string) []string {
	present := make(map[string]bool)
	for _, id := range d.Members(root) {
		if n, ok := d.Node(id); ok && !n.Duplicate {
			present[n.Genome] = true
		}
	}
	var out []string
	for _, g := range d.Genomes {
		if present[g] {
			out = append(out, g)
		}
	}
	return out
}
