package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"organizenow/internal/card"
	"organizenow/internal/column"
)

const (
	helpNormal     = "h/j/k/l: move • m: grab card • M: grab column • enter: edit • x: delete • /: search • ctrl+p: find • :: command • q: quit"
	helpMoveCard   = "h/l: move to column • j/k: reorder • enter/esc: drop"
	helpMoveColumn = "h/l: reorder column • enter/esc: drop"
)

func renderView(m Model) string {
	if m.mode == finderMode {
		return m.finder.View()
	}

	header := m.styles.header.Render("organizenow")
	body := renderBoard(m)
	footer := lipgloss.JoinVertical(lipgloss.Left, renderStatusLine(m), renderHelp(m))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderBoard(m Model) string {
	if len(m.board.Columns) == 0 {
		return m.styles.empty.Render("No columns. Create one with :create <title>")
	}

	var renderedColumns []string
	for i, col := range m.board.Columns {
		renderedColumns = append(renderedColumns, renderColumn(col, m, i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, renderedColumns...)
}

func renderColumn(c column.Column, m Model, columnIndex int) string {
	header := fmt.Sprintf("%s %d", c.Title, c.CardCount())
	headerStyle := m.styles.columnHeader
	if columnIndex == m.focusedColumn {
		headerStyle = m.styles.focusedHeader
		if m.mode == moveColumnMode {
			header = "« " + header + " »"
		}
	}
	renderedHeader := headerStyle.Render(header)

	var renderedCards []string
	for i, crd := range c.Cards {
		renderedCards = append(renderedCards, renderCard(crd, m, columnIndex, i))
	}
	if len(renderedCards) == 0 {
		renderedCards = append(renderedCards, m.styles.empty.Render("empty"))
	}

	cards := strings.Join(renderedCards, "\n")
	return m.styles.column.Render(lipgloss.JoinVertical(lipgloss.Left, renderedHeader, cards))
}

func renderCard(c card.Card, m Model, columnIndex, cardIndex int) string {
	isFocused := m.focusedColumn == columnIndex && m.focusedCard == cardIndex

	style := m.styles.card
	switch {
	case c.ID == m.grabbedCard && m.mode == moveCardMode:
		style = m.styles.grabbedCard
	case isFocused && m.mode != moveColumnMode:
		style = m.styles.focusedCard
	case m.isSearchMatch(columnIndex, cardIndex):
		style = m.styles.matchedCard
	}

	return style.Render(c.Content)
}

func renderStatusLine(m Model) string {
	switch m.mode {
	case commandMode, searchMode:
		return m.textInput.View()
	}
	if m.statusMessage == "" {
		return ""
	}
	if m.statusIsError {
		return m.styles.statusError.Render(m.statusMessage)
	}
	return m.styles.status.Render(m.statusMessage)
}

func renderHelp(m Model) string {
	help := helpNormal
	switch m.mode {
	case moveCardMode:
		help = helpMoveCard
	case moveColumnMode:
		help = helpMoveColumn
	}
	return m.styles.help.Render(help)
}
