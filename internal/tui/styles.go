package tui

import (
	"github.com/charmbracelet/lipgloss"
	"organizenow/internal/config"
)

type styles struct {
	header        lipgloss.Style
	columnHeader  lipgloss.Style
	focusedHeader lipgloss.Style
	column        lipgloss.Style
	card          lipgloss.Style
	focusedCard   lipgloss.Style
	grabbedCard   lipgloss.Style
	matchedCard   lipgloss.Style
	empty         lipgloss.Style
	status        lipgloss.Style
	statusError   lipgloss.Style
	help          lipgloss.Style

	finderPopup        lipgloss.Style
	finderPrompt       lipgloss.Style
	finderSelectedItem lipgloss.Style
	finderMatchedChar  lipgloss.Style
}

func newStyles(t config.Theme) styles {
	accent := lipgloss.Color(t.Accent)
	border := lipgloss.Color(t.Border)
	muted := lipgloss.Color(t.Muted)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Margin(0, 1).
		Width(24)

	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		columnHeader: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		focusedHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		column: lipgloss.NewStyle().
			Padding(0, 1),
		card: card,
		focusedCard: card.Copy().
			BorderForeground(accent),
		grabbedCard: card.Copy().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Bold(true),
		matchedCard: card.Copy().
			BorderForeground(lipgloss.Color("220")),
		empty: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			Padding(0, 2),
		status: lipgloss.NewStyle().
			Foreground(accent).
			Padding(0, 1),
		statusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		finderPopup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),
		finderPrompt: lipgloss.NewStyle().
			Foreground(accent),
		finderSelectedItem: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("229")),
		finderMatchedChar: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true),
	}
}
