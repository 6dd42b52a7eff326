package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) performSearch() {
	query := m.textInput.Value()

	m.searchResults = []searchResult{}
	m.currentSearchResultIdx = -1
	if query == "" {
		return
	}

	for colIdx, col := range m.board.Columns {
		for cardIdx, crd := range col.Cards {
			if crd.Matches(query) {
				m.searchResults = append(m.searchResults, searchResult{
					colIndex:  colIdx,
					cardIndex: cardIdx,
				})
			}
		}
	}
}

func (m *Model) jumpTo(res searchResult) {
	m.focusedColumn = res.colIndex
	m.focusedCard = res.cardIndex
	m.clampFocus()
}

func (m *Model) isSearchMatch(colIdx, cardIdx int) bool {
	for _, res := range m.searchResults {
		if res.colIndex == colIdx && res.cardIndex == cardIdx {
			return true
		}
	}
	return false
}

func (m *Model) jumpToFirstResult(showMessageOnFail bool) tea.Cmd {
	if len(m.searchResults) == 0 {
		if showMessageOnFail {
			m.statusMessage = "Pattern not found: " + m.lastSearchQuery
			m.textInput.SetValue("")
			return clearStatusCmd(2 * time.Second)
		}
		return nil
	}

	currentCol := m.focusedColumn
	currentCard := m.focusedCard

	if m.lastSearchDirection == "?" {
		nextIdx := -1
		for i := len(m.searchResults) - 1; i >= 0; i-- {
			res := m.searchResults[i]
			if res.colIndex < currentCol || (res.colIndex == currentCol && res.cardIndex < currentCard) {
				nextIdx = i
				break
			}
		}
		if nextIdx == -1 { // Wrap around
			nextIdx = len(m.searchResults) - 1
		}
		m.currentSearchResultIdx = nextIdx
	} else {
		nextIdx := -1
		for i, res := range m.searchResults {
			if res.colIndex > currentCol || (res.colIndex == currentCol && res.cardIndex > currentCard) {
				nextIdx = i
				break
			}
		}
		if nextIdx == -1 { // Wrap around
			nextIdx = 0
		}
		m.currentSearchResultIdx = nextIdx
	}
	m.jumpTo(m.searchResults[m.currentSearchResultIdx])
	return nil
}

func (m *Model) stepSearch(forward bool) tea.Cmd {
	if m.lastSearchQuery == "" {
		m.statusMessage = "No previous search"
		return clearStatusCmd(2 * time.Second)
	}
	if len(m.searchResults) == 0 {
		m.textInput.SetValue(m.lastSearchQuery)
		m.performSearch()
		m.textInput.SetValue("")
		if len(m.searchResults) == 0 {
			m.statusMessage = "Pattern not found: " + m.lastSearchQuery
			return clearStatusCmd(2 * time.Second)
		}
	}

	if forward {
		m.currentSearchResultIdx = (m.currentSearchResultIdx + 1) % len(m.searchResults)
	} else {
		m.currentSearchResultIdx--
		if m.currentSearchResultIdx < 0 {
			m.currentSearchResultIdx = len(m.searchResults) - 1
		}
	}
	m.jumpTo(m.searchResults[m.currentSearchResultIdx])
	return nil
}

func (m *Model) findNext() tea.Cmd {
	return m.stepSearch(m.lastSearchDirection != "?")
}

func (m *Model) findPrev() tea.Cmd {
	return m.stepSearch(m.lastSearchDirection == "?")
}
