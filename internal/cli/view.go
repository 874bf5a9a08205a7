package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for interactive board inspection.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [board.json]",
		Short: "Inspect a board's grouped layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			b, err := board.ReadBoardFile(args[0])
			if err != nil {
				return err
			}

			model := NewBoardModel(b, layout.New(layout.WithSettings(cfg.Layout)))
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// =============================================================================
// BoardModel - Interactive grouped layout view
// =============================================================================

// BoardModel is the bubbletea model for inspecting a board's layout. It
// drives the filter state machine: toggling between the normal canvas and the
// grouped view, and cycling the active label filter.
type BoardModel struct {
	Board      board.Board
	Engine     *layout.Engine
	Controller *classify.Controller

	cursor int // index into Board.Labels; -1 means no filter (overview)
	plan   layout.Plan
	err    error
}

// NewBoardModel creates a board view model in the normal (unfiltered) state.
func NewBoardModel(b board.Board, engine *layout.Engine) BoardModel {
	return BoardModel{
		Board:      b,
		Engine:     engine,
		Controller: classify.NewController(),
		cursor:     -1,
	}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			if m.Controller.State().IsGrouped() {
				m.Controller.ExitGrouped()
			} else {
				m.Controller.EnterGrouped(m.activeLabel())
				m.recompute()
			}
		case "left", "h":
			if m.cursor > -1 {
				m.cursor--
				m.applyFilter()
			}
		case "right", "l":
			if m.cursor < len(m.Board.Labels)-1 {
				m.cursor++
				m.applyFilter()
			}
		case "esc":
			m.cursor = -1
			m.applyFilter()
		}
	}
	return m, nil
}

// activeLabel returns the label under the cursor, or empty for the overview.
func (m *BoardModel) activeLabel() string {
	if m.cursor < 0 || m.cursor >= len(m.Board.Labels) {
		return ""
	}
	return m.Board.Labels[m.cursor]
}

// applyFilter records the cursor's label on the controller and, when the
// grouped view is showing, recomputes the plan with the new filter.
func (m *BoardModel) applyFilter() {
	m.Controller.SetFilter(m.activeLabel())
	if m.Controller.State().IsGrouped() {
		m.Controller.EnterGrouped(m.activeLabel())
		m.recompute()
	}
}

func (m *BoardModel) recompute() {
	m.plan, m.err = m.Engine.Plan(m.Board.Objects, m.Controller.State().ActiveFilter)
}

func (m BoardModel) View() string {
	var b strings.Builder

	title := m.Board.Name
	if title == "" {
		title = m.Board.ID
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("g group/ungroup  ←/→ filter  esc clear  q quit"))
	b.WriteString("\n\n")

	// Filter selector
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if !m.Controller.State().IsGrouped() {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d objects at their canvas positions", len(m.Board.Objects))))
		b.WriteString("\n")
		return b.String()
	}

	for _, g := range m.plan.Groups {
		b.WriteString(listNormalStyle.Render(g.Key.String()))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d objects · %.0f×%.0f at %.0f,%.0f",
			len(g.Members), g.Bounds.Width(), g.Bounds.Height(), g.Bounds.Left, g.Bounds.Top)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFilterBar draws the label cycle with the active entry highlighted.
func (m BoardModel) renderFilterBar() string {
	entries := make([]string, 0, len(m.Board.Labels)+1)

	overview := "overview"
	if m.cursor == -1 {
		overview = listSelectedStyle.Render("[" + overview + "]")
	} else {
		overview = listDimStyle.Render(overview)
	}
	entries = append(entries, overview)

	for i, l := range m.Board.Labels {
		if i == m.cursor {
			entries = append(entries, listSelectedStyle.Render("["+l+"]"))
		} else {
			entries = append(entries, listNormalStyle.Render(l))
		}
	}
	return strings.Join(entries, listDimStyle.Render(" · "))
}
