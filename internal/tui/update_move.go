package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
)

// updateMoveCardMode drags the grabbed card one step per key press. Every
// step is a single CardMove applied to the session.
func (m *Model) updateMoveCardMode(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	var dCol, dRow int
	switch keyMsg.String() {
	case "h", "left":
		dCol = -1
	case "l", "right":
		dCol = 1
	case "k", "up":
		dRow = -1
	case "j", "down":
		dRow = 1
	case "enter", "esc", "m", " ":
		m.mode = normalMode
		m.grabbedCard = ""
		m.statusMessage = "Card dropped"
		return clearStatusCmd(2 * time.Second)
	case "ctrl+c":
		return tea.Quit
	default:
		return nil
	}

	mv, ok := m.board.StepCard(m.grabbedCard, dCol, dRow)
	if !ok {
		return nil
	}
	cmd := m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.Move(ctx, mv)
	}, "Moving card")
	m.followGrabbedCard()
	return cmd
}

func (m *Model) followGrabbedCard() {
	if ci, ri := m.board.FindCard(m.grabbedCard); ci >= 0 {
		m.focusedColumn, m.focusedCard = ci, ri
	}
}

func (m *Model) updateMoveColumnMode(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	to := m.focusedColumn
	switch keyMsg.String() {
	case "h", "left":
		to--
	case "l", "right":
		to++
	case "enter", "esc", "M":
		m.mode = normalMode
		m.statusMessage = "Column dropped"
		return clearStatusCmd(2 * time.Second)
	case "ctrl+c":
		return tea.Quit
	default:
		return nil
	}

	if to < 0 || to >= len(m.board.Columns) {
		return nil
	}
	from := m.focusedColumn
	colID := m.board.Columns[from].ID
	cmd := m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.Move(ctx, board.ColumnMove{From: from, To: to})
	}, "Moving column")
	if i := m.board.ColumnIndex(colID); i >= 0 {
		m.focusedColumn = i
		m.clampFocus()
	}
	return cmd
}
