package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// openSearch starts an incremental search. prompt is "/" for forward and
// "?" for backward searches.
func (m *Model) openSearch(prompt string) tea.Cmd {
	m.statusMessage = ""
	m.mode = searchMode
	m.searchOrigin = searchResult{colIndex: m.focusedColumn, cardIndex: m.focusedCard}
	m.textInput.Prompt = prompt
	m.textInput.SetValue("")
	return m.textInput.Focus()
}

func (m *Model) closeSearch() {
	m.mode = normalMode
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *Model) updateSearchMode(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEscape, tea.KeyCtrlC:
			// Cancelling puts the cursor back where the search started.
			m.closeSearch()
			m.searchResults = nil
			m.jumpTo(m.searchOrigin)
			return nil

		case tea.KeyEnter:
			query := m.textInput.Value()
			if query == "" {
				query = m.lastSearchQuery
				m.textInput.SetValue(query)
			}
			m.lastSearchQuery = query
			m.lastSearchDirection = m.textInput.Prompt
			m.performSearch()
			cmd := m.jumpToFirstResult(true)
			m.closeSearch()
			return cmd
		}
	}

	prev := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() == prev {
		return cmd
	}

	// Preview from the starting point so narrowing the query doesn't drift.
	m.jumpTo(m.searchOrigin)
	m.performSearch()
	if len(m.searchResults) > 0 {
		m.lastSearchDirection = m.textInput.Prompt
		m.jumpToFirstResult(false)
	}
	return cmd
}
