package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	listCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listCheckedStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// PickModel - Interactive node selection
// =============================================================================

// PickModel is the bubbletea model for choosing the nodes to copy.
type PickModel struct {
	Nodes   []*scheme.Node
	Checked []bool
	Cursor  int
	Height  int
	Offset  int

	// Copy is set when the user confirms the selection.
	Copy bool
}

// NewPickModel creates a pick model over nodes, pre-checking the ones
// already selected.
func NewPickModel(nodes []*scheme.Node) PickModel {
	checked := make([]bool, len(nodes))
	for i, n := range nodes {
		checked[i] = n.IsSelected()
	}
	return PickModel{Nodes: nodes, Checked: checked, Height: 15}
}

// Picked returns the checked nodes in list order.
func (m PickModel) Picked() []*scheme.Node {
	var out []*scheme.Node
	for i, n := range m.Nodes {
		if m.Checked[i] {
			out = append(out, n)
		}
	}
	return out
}

func (m PickModel) Init() tea.Cmd {
	return nil
}

func (m PickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Nodes) > 0 {
				m.Checked = toggled(m.Checked, m.Cursor)
			}
		case "a":
			all := !allChecked(m.Checked)
			checked := make([]bool, len(m.Checked))
			for i := range checked {
				checked[i] = all
			}
			m.Checked = checked
		case "c", "enter":
			m.Copy = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Nodes to Copy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  c copy  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))
	rows := nodeRows(m.Nodes[m.Offset:end])
	for i := range rows {
		mark := "[ ]"
		if m.Checked[m.Offset+i] {
			mark = "[x]"
		}
		rows[i] = append([]string{mark}, rows[i]...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, nodeHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listCurrentStyle
			case idx < len(m.Checked) && m.Checked[idx]:
				return listCheckedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected  [%d/%d]",
		len(m.Picked()), min(m.Cursor+1, len(m.Nodes)), len(m.Nodes))))

	return b.String()
}

func toggled(checked []bool, i int) []bool {
	out := append([]bool(nil), checked...)
	out[i] = !out[i]
	return out
}

func allChecked(checked []bool) bool {
	for _, c := range checked {
		if !c {
			return false
		}
	}
	return true
}

// =============================================================================
// Command
// =============================================================================

// pickCommand creates the "pick" command.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <project.json>",
		Short: "Choose nodes interactively and copy them to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p.Graph().NodeCount() == 0 {
				printInfo("Scheme has no nodes")
				return nil
			}

			final, err := tea.NewProgram(NewPickModel(p.Graph().Nodes()), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("pick: %w", err)
			}
			m := final.(PickModel)
			if !m.Copy {
				return nil
			}
			if len(m.Picked()) == 0 {
				printInfo("No nodes picked")
				return nil
			}

			p.Scene.ClearSelection()
			for _, n := range m.Picked() {
				if err := p.Scene.Select(n, true); err != nil {
					return err
				}
			}
			return c.copySelection(p.Scene)
		},
	}
}
