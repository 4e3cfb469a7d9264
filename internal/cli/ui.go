package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/panel"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan      = lipgloss.Color("36")  // Teal - primary actions
	colorGreen     = lipgloss.Color("35")  // Green - success
	colorRed       = lipgloss.Color("167") // Soft red - errors
	colorBlue      = lipgloss.Color("75")  // Light blue - links
	colorLightBlue = lipgloss.Color("153") // Light blue - person names
	colorWhite     = lipgloss.Color("255") // Bright white - values
	colorGray      = lipgloss.Color("245") // Gray - secondary text
	colorDim       = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	stylePersonName = lipgloss.NewStyle().Bold(true).Foreground(colorLightBlue)
	styleLabel      = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	stylePanelError = lipgloss.NewStyle().Foreground(colorRed)
	stylePanelBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Panel Rendering
// =============================================================================

// renderPanel draws the detail panel for the terminal, mirroring the sidebar
// layout of the web page.
func renderPanel(p panel.Panel) string {
	if p.Message != "" {
		return stylePanelBox.Render(stylePanelError.Render(iconError + " " + p.Message))
	}
	if p.Empty() {
		return stylePanelBox.Render(StyleDim.Render("Nobody selected"))
	}

	var b strings.Builder
	b.WriteString(stylePersonName.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(styleLabel.Render("Origin:") + " " + StyleValue.Render(p.Origin))
	b.WriteString("\n")
	b.WriteString(styleLabel.Render("Native language:") + " " + StyleValue.Render(p.Language))
	b.WriteString("\n\n")
	b.WriteString(styleLabel.Render("Connections"))
	if len(p.Connections) == 0 {
		b.WriteString("\n" + StyleDim.Render("  none"))
	}
	for _, c := range p.Connections {
		b.WriteString("\n- " + StyleValue.Render(c.Name) + " " + StyleDim.Render("("+c.Type+")"))
	}
	return stylePanelBox.Render(b.String())
}

// renderPeopleTable lists every person with their degree.
func renderPeopleTable(net *network.Network) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, p := range net.People() {
		degree := 0
		if seq, err := net.NeighborsOf(p.ID); err == nil {
			for range seq {
				degree++
			}
		}
		rows = append(rows, []string{p.ID, p.Name, dash(p.Origin), dash(p.Language), strconv.Itoa(degree)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Origin", "Language", "Connections").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorLightBlue)
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
	return t.Render()
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
