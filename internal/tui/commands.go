// internal/tui/commands.go
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
)

type commandInfo struct {
	execute func(m *Model, command, args string) tea.Cmd
}

var commandRegistry = make(map[string]commandInfo)

func registerCommand(name string, info commandInfo) {
	commandRegistry[name] = info
}

func init() {
	registerCommand("q", commandInfo{execute: cmdQuit})
	registerCommand("Q", commandInfo{execute: cmdQuit})
	registerCommand("wq", commandInfo{execute: cmdQuit})
	registerCommand("quit", commandInfo{execute: cmdQuit})

	registerCommand("find", commandInfo{execute: cmdFind})
	registerCommand("fzf", commandInfo{execute: cmdFind})
	registerCommand("new", commandInfo{execute: cmdNewCard})
	registerCommand("edit", commandInfo{execute: cmdEditCard})
	registerCommand("create", commandInfo{execute: cmdCreateColumn})
	registerCommand("rename", commandInfo{execute: cmdRenameColumn})
	registerCommand("delete", commandInfo{execute: cmdDeleteColumn})
	registerCommand("right", commandInfo{execute: cmdMoveColumnRight})
	registerCommand("left", commandInfo{execute: cmdMoveColumnLeft})
	registerCommand("noh", commandInfo{execute: cmdNoHighlight})
	registerCommand("nohlsearch", commandInfo{execute: cmdNoHighlight})
}

// ExecuteCommand runs a command line such as "new Buy milk".
func (m *Model) ExecuteCommand(input string) tea.Cmd {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	command := parts[0]
	if command == "" {
		return nil
	}

	var args string
	if len(parts) > 1 {
		args = parts[1]
	}

	info, ok := commandRegistry[command]
	if !ok {
		m.statusMessage = "Unknown command: " + command
		m.statusIsError = true
		return clearStatusCmd(3 * time.Second)
	}
	return info.execute(m, command, args)
}

func cmdQuit(m *Model, command, args string) tea.Cmd {
	return tea.Quit
}

func cmdFind(m *Model, command, args string) tea.Cmd {
	return m.openFinder()
}

func cmdNewCard(m *Model, command, args string) tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		m.statusMessage = "Create a column first: :create <title>"
		return clearStatusCmd(3 * time.Second)
	}

	cmd := m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.AddCard(ctx, col.ID, args)
	}, "Card added")
	if updated, ok := m.currentColumn(); ok && updated.CardCount() > col.CardCount() {
		m.focusedCard = updated.CardCount() - 1
	}
	return cmd
}

func cmdEditCard(m *Model, command, args string) tea.Cmd {
	crd, ok := m.currentCard()
	if !ok {
		return nil
	}
	col, _ := m.currentColumn()
	return m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.RenameCard(ctx, col.ID, crd.ID, args)
	}, "Card updated")
}

func cmdCreateColumn(m *Model, command, args string) tea.Cmd {
	before := len(m.board.Columns)
	title := strings.TrimSpace(args)
	cmd := m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.AddColumn(ctx, args)
	}, fmt.Sprintf("Column %q created", title))
	if len(m.board.Columns) > before {
		m.focusedColumn = len(m.board.Columns) - 1
		m.clampFocus()
	}
	return cmd
}

func cmdRenameColumn(m *Model, command, args string) tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	return m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.RenameColumn(ctx, col.ID, args)
	}, fmt.Sprintf("Column renamed to %q", strings.TrimSpace(args)))
}

func cmdDeleteColumn(m *Model, command, args string) tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	return m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.RemoveColumn(ctx, col.ID)
	}, fmt.Sprintf("Column %q deleted", col.Title))
}

func cmdMoveColumnRight(m *Model, command, args string) tea.Cmd {
	return m.shiftColumn(1, "Moved column right")
}

func cmdMoveColumnLeft(m *Model, command, args string) tea.Cmd {
	return m.shiftColumn(-1, "Moved column left")
}

func (m *Model) shiftColumn(delta int, msg string) tea.Cmd {
	col, ok := m.currentColumn()
	if !ok {
		return nil
	}
	from := m.focusedColumn
	cmd := m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.Move(ctx, board.ColumnMove{From: from, To: from + delta})
	}, msg)
	if i := m.board.ColumnIndex(col.ID); i >= 0 {
		m.focusedColumn = i
	}
	return cmd
}

func cmdNoHighlight(m *Model, command, args string) tea.Cmd {
	m.lastSearchQuery = ""
	m.searchResults = nil
	m.currentSearchResultIdx = -1
	m.statusMessage = "Search highlighting cleared"
	return clearStatusCmd(2 * time.Second)
}
