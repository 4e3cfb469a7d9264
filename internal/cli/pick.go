package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listCurrentStyle  = lipgloss.NewStyle().Foreground(colorLightBlue)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the interactive pick command.
func (c *CLI) pickCommand() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Browse people interactively in the terminal",
		Long: `Browse people interactively in the terminal.

Move through the selection list and press enter to show a person's panel.
Choosing "(none)" clears the selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.resolveConfig(cmd, &cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			snap, err := loadSnapshot(ctx, source(cfg))
			if err != nil {
				return err
			}

			session, err := pipeline.NewSession(ctx, pipeline.NewRunner(nil, nil, c.Logger), snap, cfg.SceneOptions())
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPickModel(ctx, session), tea.WithContext(ctx), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(PickModel); ok && m.Session.Selection().IsSelected() {
				printInfo("Last selected: %s", StyleHighlight.Render(m.Session.Current().Selection))
			}
			return nil
		},
	}

	addDatasetFlags(cmd, &cfg)
	return cmd
}

// =============================================================================
// PickModel - Interactive person selection
// =============================================================================

// PickModel is the bubbletea model for the pick command. The left column is
// the selection control; the right column is the detail panel of the last
// render pass.
type PickModel struct {
	Session *pipeline.Session
	Options []string
	Cursor  int
	Height  int
	Offset  int

	ctx    context.Context
	result pipeline.Result
}

// NewPickModel creates a pick model over session.
func NewPickModel(ctx context.Context, session *pipeline.Session) PickModel {
	return PickModel{
		Session: session,
		Options: session.Options(),
		Height:  15,
		ctx:     ctx,
		result:  session.Current(),
	}
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
				m.clampOffset()
			}
		case "down", "j":
			if m.Cursor < len(m.Options)-1 {
				m.Cursor++
				m.clampOffset()
			}
		case "enter":
			// A failed lookup returns an error panel over the previous scene.
			m.result, _ = m.Session.Select(m.ctx, m.Options[m.Cursor])
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

// clampOffset scrolls the list so Cursor lies in [Offset, Offset+Height)
// without leaving empty rows below the last option.
func (m *PickModel) clampOffset() {
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	if last := max(len(m.Options)-m.Height, 0); m.Offset > last {
		m.Offset = last
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
}

func (m PickModel) View() string {
	var list strings.Builder

	list.WriteString(StyleTitle.Render("Select a person"))
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	list.WriteString("\n\n")

	current := m.Session.Current().Selection
	end := min(m.Offset+m.Height, len(m.Options))
	for i := m.Offset; i < end; i++ {
		name := m.Options[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + name
		switch {
		case i == m.Cursor:
			list.WriteString(listSelectedStyle.Render(line))
		case name == current:
			list.WriteString(listCurrentStyle.Render(line))
		default:
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Options))))

	left := lipgloss.NewStyle().Width(32).Render(list.String())
	right := renderPanel(m.result.Panel)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
