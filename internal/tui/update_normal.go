// internal/tui/update_normal.go
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
	"organizenow/internal/card"
	"organizenow/internal/column"
)

func (m *Model) currentColumn() (column.Column, bool) {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.board.Columns) {
		return column.Column{}, false
	}
	return m.board.Columns[m.focusedColumn], true
}

func (m *Model) currentCard() (card.Card, bool) {
	col, ok := m.currentColumn()
	if !ok || m.focusedCard < 0 || m.focusedCard >= len(col.Cards) {
		return card.Card{}, false
	}
	return col.Cards[m.focusedCard], true
}

func (m *Model) openCommandLine(prefill string) tea.Cmd {
	m.statusMessage = ""
	m.mode = commandMode
	m.textInput.Prompt = ":"
	m.textInput.SetValue(prefill)
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

func (m *Model) updateNormalMode(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if keyMsg.Type == tea.KeyCtrlP {
		return m.openFinder()
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return tea.Quit

	case "esc":
		m.searchResults = nil
		m.statusMessage = ""

	case ":":
		return m.openCommandLine("")

	case "/", "?":
		return m.openSearch(keyMsg.String())

	case "n":
		return m.findNext()

	case "N":
		return m.findPrev()

	case "h", "left":
		if m.focusedColumn > 0 {
			m.focusedColumn--
			m.clampFocus()
		}

	case "l", "right":
		if m.focusedColumn < len(m.board.Columns)-1 {
			m.focusedColumn++
			m.clampFocus()
		}

	case "k", "up":
		if m.focusedCard > 0 {
			m.focusedCard--
		}

	case "j", "down":
		if col, ok := m.currentColumn(); ok && m.focusedCard < col.CardCount()-1 {
			m.focusedCard++
		}

	case "g":
		m.focusedCard = 0

	case "G":
		if col, ok := m.currentColumn(); ok {
			m.focusedCard = col.CardCount() - 1
			m.clampFocus()
		}

	case "o", "a":
		if _, ok := m.currentColumn(); ok {
			return m.openCommandLine("new ")
		}

	case "c":
		return m.openCommandLine("create ")

	case "r":
		if col, ok := m.currentColumn(); ok {
			return m.openCommandLine("rename " + col.Title)
		}

	case "e":
		if crd, ok := m.currentCard(); ok {
			return m.openCommandLine("edit " + crd.Content)
		}

	case "enter":
		if crd, ok := m.currentCard(); ok {
			col, _ := m.currentColumn()
			return openEditor(col.ID, crd)
		}

	case "x", "delete":
		crd, ok := m.currentCard()
		if !ok {
			return nil
		}
		col, _ := m.currentColumn()
		return m.apply(func(ctx context.Context) (board.Board, error) {
			return m.session.RemoveCard(ctx, col.ID, crd.ID)
		}, "Card deleted")

	case "m", " ":
		if crd, ok := m.currentCard(); ok {
			m.mode = moveCardMode
			m.grabbedCard = crd.ID
			m.statusMessage = "Moving card"
		}

	case "M":
		if col, ok := m.currentColumn(); ok {
			m.mode = moveColumnMode
			m.statusMessage = fmt.Sprintf("Moving column %q", col.Title)
		}

	case "ctrl+r":
		m.refresh()
		m.statusMessage = "Board refreshed"
		return clearStatusCmd(2 * time.Second)
	}
	return nil
}
