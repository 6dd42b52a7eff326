// internal/tui/finder.go
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"organizenow/internal/config"
)

type finderSelectedMsg struct{ cardID string }
type finderCancelledMsg struct{}

type FinderItem struct {
	CardID   string
	Content  string
	ColTitle string
}

type itemSource []FinderItem

func (s itemSource) String(i int) string {
	return s[i].Content
}

func (s itemSource) Len() int {
	return len(s)
}

type FinderModel struct {
	textinput     textinput.Model
	viewport      viewport.Model
	styles        styles
	items         itemSource
	matches       fuzzy.Matches
	selectedIndex int
	width         int
	height        int
	ready         bool
}

func NewFinderModel(theme config.Theme) FinderModel {
	st := newStyles(theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Find a card..."
	ti.PromptStyle = st.finderPrompt

	return FinderModel{
		textinput: ti,
		viewport:  viewport.New(0, 0),
		styles:    st,
	}
}

func (m *FinderModel) popupSize() (int, int) {
	popupWidth := int(float64(m.width) * 0.8)
	if popupWidth > 120 {
		popupWidth = 120
	}
	popupHeight := int(float64(m.height) * 0.6)
	if popupHeight < 5 {
		popupHeight = 5
	}
	return popupWidth, popupHeight
}

func (m *FinderModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.ready = true

	popupWidth, popupHeight := m.popupSize()
	m.textinput.Width = popupWidth - 4 // Padding
	m.viewport.Width = popupWidth - 4
	m.viewport.Height = popupHeight - 3 // Title and prompt
}

// SetItems replaces the searchable cards and resets the query.
func (m *FinderModel) SetItems(items []FinderItem) {
	m.items = items
	m.textinput.SetValue("")
	m.filter()
	m.viewport.SetContent(m.renderResults())
}

func (m FinderModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FinderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEscape, tea.KeyCtrlC:
			m.textinput.Blur()
			return m, func() tea.Msg { return finderCancelledMsg{} }

		case tea.KeyEnter:
			m.textinput.Blur()
			if len(m.matches) > 0 {
				selected := m.items[m.matches[m.selectedIndex].Index]
				return m, func() tea.Msg { return finderSelectedMsg{cardID: selected.CardID} }
			}
			return m, func() tea.Msg { return finderCancelledMsg{} }

		case tea.KeyDown, tea.KeyCtrlN:
			if m.selectedIndex < len(m.matches)-1 {
				m.selectedIndex++
			} else {
				m.selectedIndex = 0
			}
			m.refreshResults()
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if m.selectedIndex > 0 {
				m.selectedIndex--
			} else if len(m.matches) > 0 {
				m.selectedIndex = len(m.matches) - 1
			}
			m.refreshResults()
			return m, nil
		}
	}

	prev := m.textinput.Value()
	m.textinput, cmd = m.textinput.Update(msg)
	if m.textinput.Value() != prev {
		m.filter()
	}
	m.refreshResults()

	return m, cmd
}

// filter matches the query against the items. An empty query lists every
// card in board order.
func (m *FinderModel) filter() {
	m.selectedIndex = 0
	query := m.textinput.Value()
	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.items))
		for i, item := range m.items {
			m.matches[i] = fuzzy.Match{Str: item.Content, Index: i}
		}
		return
	}
	m.matches = fuzzy.FindFrom(query, m.items)
}

func (m *FinderModel) refreshResults() {
	m.viewport.SetContent(m.renderResults())
	if m.selectedIndex < m.viewport.YOffset {
		m.viewport.SetYOffset(m.selectedIndex)
	} else if m.viewport.Height > 0 && m.selectedIndex >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.selectedIndex - m.viewport.Height + 1)
	}
}

func (m FinderModel) renderResults() string {
	var b strings.Builder
	for i, match := range m.matches {
		item := m.items[match.Index]

		line := "  "
		if i == m.selectedIndex {
			line = "> "
		}

		matchedIndexes := make(map[int]struct{}, len(match.MatchedIndexes))
		for _, idx := range match.MatchedIndexes {
			matchedIndexes[idx] = struct{}{}
		}

		var content strings.Builder
		for charIdx, char := range item.Content {
			if _, ok := matchedIndexes[charIdx]; ok {
				content.WriteString(m.styles.finderMatchedChar.Render(string(char)))
			} else {
				content.WriteRune(char)
			}
		}

		line += fmt.Sprintf("%s [%s]", content.String(), item.ColTitle)

		if i == m.selectedIndex {
			b.WriteString(m.styles.finderSelectedItem.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteRune('\n')
	}
	if len(m.matches) == 0 {
		b.WriteString("  no matches")
	}
	return b.String()
}

func (m FinderModel) View() string {
	if !m.ready {
		return ""
	}

	popupWidth, popupHeight := m.popupSize()

	title := fmt.Sprintf("Find Card (%d/%d)", len(m.matches), len(m.items))
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), m.textinput.View())
	popup := m.styles.finderPopup.Width(popupWidth).Height(popupHeight).Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
}

// openFinder fills the finder with every card on the board and switches to
// finder mode.
func (m *Model) openFinder() tea.Cmd {
	var items []FinderItem
	for _, col := range m.board.Columns {
		for _, crd := range col.Cards {
			items = append(items, FinderItem{CardID: crd.ID, Content: crd.Content, ColTitle: col.Title})
		}
	}
	if len(items) == 0 {
		m.statusMessage = "No cards to find"
		return clearStatusCmd(2 * time.Second)
	}

	m.statusMessage = ""
	m.mode = finderMode
	m.finder.SetItems(items)
	return m.finder.textinput.Focus()
}
