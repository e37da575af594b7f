package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/syntower/pkg/core/diagram"
	"github.com/matzehuels/syntower/pkg/core/view"
)

var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	memberStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	focusOnStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	focusOffStyle  = lipgloss.NewStyle().Foreground(colorGray)
	minTableHeight = 5
)

// =============================================================================
// ComponentModel - Interactive component browser
// =============================================================================

// ComponentModel is the bubbletea model of `syntower inspect`. It lists the
// groups of a diagram and edits a [view.State]: selecting a group selects
// its root gene (and the root's twin), focus mode dims the rest.
type ComponentModel struct {
	Diagram *diagram.Diagram
	Filter  view.Filter
	State   view.State

	// Saved is set when the user leaves with "w"; the caller then writes
	// the selection.
	Saved bool

	roots   []string
	visible int // visible edge count under Filter
	cursor  int
	offset  int
	height  int
	members bool
}

// NewComponentModel creates a browser over d starting from state.
func NewComponentModel(d *diagram.Diagram, filter view.Filter, state view.State) ComponentModel {
	return ComponentModel{
		Diagram: d,
		Filter:  filter,
		State:   state,
		roots:   componentRows(d),
		visible: len(filter.Apply(d.Edges)),
		height:  15,
	}
}

func (m ComponentModel) Init() tea.Cmd {
	return nil
}

func (m ComponentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "w":
			m.Saved = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.roots)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "x":
			if len(m.roots) > 0 {
				m.State = view.ToggleNode(m.Diagram, m.State, m.roots[m.cursor])
			}
		case "f":
			m.State = m.State.WithFocus(!m.State.Focused)
		case "c":
			m.State = m.State.Cleared()
		case "enter", "m":
			m.members = !m.members
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, minTableHeight)
	}
	return m, nil
}

func (m ComponentModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Groups"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space select  f focus  c clear  ⏎ members  w save  q quit"))
	b.WriteString("\n\n")

	if len(m.roots) == 0 {
		b.WriteString(listDimStyle.Render("  diagram is empty"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.roots))
	window := m.roots[m.offset:end]
	b.WriteString(componentTable(m.Diagram, window, m.cursor-m.offset, m.State.NodeSelected))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.roots))))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.members {
		b.WriteString("\n")
		b.WriteString(m.memberList(m.roots[m.cursor]))
	}
	return b.String()
}

// statusLine reports focus mode and what focus keeps at full strength.
func (m ComponentModel) statusLine() string {
	mode := focusOffStyle.Render("focus off")
	if m.State.Focused {
		mode = focusOnStyle.Render("focus on")
	}
	parts := []string{
		mode,
		fmt.Sprintf("%d selected", len(m.State.SelectedNodes)),
		fmt.Sprintf("%d/%d links visible", m.visible, len(m.Diagram.Edges)),
	}
	f := view.ComputeFocus(m.Diagram, m.Filter.Apply(m.Diagram.Edges), m.State)
	if f.Active {
		parts = append(parts, fmt.Sprintf("%d genes, %d links in focus", len(f.Nodes), len(f.Edges)))
	}
	return listDimStyle.Render(strings.Join(parts, " · "))
}

// memberList lists the genes of root's component by row.
func (m ComponentModel) memberList(root string) string {
	var b strings.Builder
	for _, id := range m.Diagram.Members(root) {
		n, ok := m.Diagram.Node(id)
		if !ok {
			continue
		}
		row := m.Diagram.Row(id)
		protein := n.Protein
		if protein == "" {
			protein = "-"
		}
		line := fmt.Sprintf("  %2d %-20s %-16s %s", row, id, view.TruncateLabel(n.Genome), protein)
		if m.State.NodeSelected(id) {
			line = focusOnStyle.Render(line)
		} else {
			line = memberStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Selection returns the current state in wire form.
func (m ComponentModel) Selection() view.Selection {
	return view.SelectionOf(m.State)
}
