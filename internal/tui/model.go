package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
	"organizenow/internal/config"
	"organizenow/internal/fs"
	"organizenow/internal/session"
)

type mode int

const (
	normalMode mode = iota
	commandMode
	searchMode
	moveCardMode
	moveColumnMode
	finderMode
)

type searchResult struct {
	colIndex  int
	cardIndex int
}

type clearStatusMsg struct{}

// boardChangedMsg is sent when the store reports a change made elsewhere.
type boardChangedMsg struct{}

type Options struct {
	Theme config.Theme
	State fs.AppState
	// Changes, when set, signals external edits to the stored board.
	Changes <-chan struct{}
}

type Model struct {
	ctx     context.Context
	session *session.Session
	board   board.Board
	styles  styles
	changes <-chan struct{}

	mode          mode
	focusedColumn int
	focusedCard   int
	grabbedCard   string

	textInput     textinput.Model
	finder        FinderModel
	statusMessage string
	statusIsError bool

	lastSearchQuery        string
	lastSearchDirection    string
	searchResults          []searchResult
	searchOrigin           searchResult
	currentSearchResultIdx int

	width  int
	height int
}

func NewModel(ctx context.Context, s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 256

	m := Model{
		ctx:                    ctx,
		session:                s,
		board:                  s.Board(),
		styles:                 newStyles(opts.Theme),
		changes:                opts.Changes,
		textInput:              ti,
		finder:                 NewFinderModel(opts.Theme),
		focusedColumn:          opts.State.FocusedColumn,
		focusedCard:            opts.State.FocusedCard,
		currentSearchResultIdx: -1,
	}
	m.clampFocus()
	return m
}

func (m *Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.finder.SetSize(msg.Width, msg.Height)
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil

	case boardChangedMsg:
		changed, err := m.session.Reload(m.ctx)
		if err != nil {
			return m, tea.Batch(m.notifyError(err), waitForChange(m.changes))
		}
		if changed {
			m.refresh()
			m.statusMessage = "Board reloaded"
			return m, tea.Batch(clearStatusCmd(2*time.Second), waitForChange(m.changes))
		}
		return m, waitForChange(m.changes)

	case editorFinishedMsg:
		return m, m.finishEdit(msg)

	case finderSelectedMsg:
		m.mode = normalMode
		if ci, ri := m.board.FindCard(msg.cardID); ci >= 0 {
			m.focusedColumn, m.focusedCard = ci, ri
		}
		return m, nil

	case finderCancelledMsg:
		m.mode = normalMode
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case normalMode:
		cmd = m.updateNormalMode(msg)
	case commandMode:
		cmd = m.updateCommandMode(msg)
	case searchMode:
		cmd = m.updateSearchMode(msg)
	case moveCardMode:
		cmd = m.updateMoveCardMode(msg)
	case moveColumnMode:
		cmd = m.updateMoveColumnMode(msg)
	case finderMode:
		var model tea.Model
		model, cmd = m.finder.Update(msg)
		m.finder = model.(FinderModel)
	}
	return m, cmd
}

func (m *Model) View() string {
	return renderView(*m)
}

func (m Model) FocusedColumn() int {
	return m.focusedColumn
}

func (m Model) FocusedCard() int {
	return m.focusedCard
}

func (m Model) Board() board.Board {
	return m.board
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return boardChangedMsg{}
	}
}

func clearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// apply runs a session operation and shows msg on success. A board that
// changed but failed to save is still adopted.
func (m *Model) apply(op func(ctx context.Context) (board.Board, error), msg string) tea.Cmd {
	b, err := op(m.ctx)
	if err != nil && !errors.Is(err, session.ErrNotSaved) {
		return m.notifyError(err)
	}
	m.board = b
	m.clampFocus()
	m.searchResults = nil
	if err != nil {
		return m.notifyError(err)
	}
	m.statusMessage = msg
	m.statusIsError = false
	return clearStatusCmd(3 * time.Second)
}

func (m *Model) notifyError(err error) tea.Cmd {
	m.statusMessage = "Error: " + err.Error()
	m.statusIsError = true
	return clearStatusCmd(5 * time.Second)
}

func (m *Model) refresh() {
	m.board = m.session.Board()
	m.searchResults = nil
	if m.grabbedCard != "" {
		if ci, _ := m.board.FindCard(m.grabbedCard); ci < 0 {
			m.grabbedCard = ""
			m.mode = normalMode
		}
	}
	m.clampFocus()
}

func (m *Model) clampFocus() {
	if m.focusedColumn >= len(m.board.Columns) {
		m.focusedColumn = len(m.board.Columns) - 1
	}
	if m.focusedColumn < 0 {
		m.focusedColumn = 0
	}
	n := 0
	if col, ok := m.currentColumn(); ok {
		n = col.CardCount()
	}
	if m.focusedCard >= n {
		m.focusedCard = n - 1
	}
	if m.focusedCard < 0 {
		m.focusedCard = 0
	}
}
