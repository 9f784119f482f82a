package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibrange/internal/ui"
)

// Style variables for the form, rebuilt from the ui theme by initStyles.
var (
	frameStyle        lipgloss.Style
	titleStyle        lipgloss.Style
	labelStyle        lipgloss.Style
	fieldStyle        lipgloss.Style
	fieldFocusedStyle lipgloss.Style
	modeActiveStyle   lipgloss.Style
	modeIdleStyle     lipgloss.Style
	resultStyle       lipgloss.Style
	statusOKStyle     lipgloss.Style
	statusErrorStyle  lipgloss.Style
	helpKeyStyle      lipgloss.Style
	helpDescStyle     lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has chosen its theme.
func initStyles() {
	t := ui.GetCurrentTUITheme()

	frameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(7)

	fieldStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Dim).
		Width(24)

	fieldFocusedStyle = fieldStyle.
		BorderForeground(t.Accent)

	modeActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	modeIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	statusOKStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	helpDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
