// internal/tui/editor.go
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
	"organizenow/internal/card"
)

type editorFinishedMsg struct {
	err      error
	path     string
	columnID string
	cardID   string
	original string
}

func editorCommand() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	return editor
}

// openEditor writes the card content to a temp file and hands the terminal
// to $EDITOR. The result comes back as an editorFinishedMsg.
func openEditor(columnID string, crd card.Card) tea.Cmd {
	f, err := os.CreateTemp("", "organizenow-*.md")
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("could not create temp file: %w", err)}
		}
	}
	path := f.Name()
	_, werr := f.WriteString(crd.Content + "\n")
	cerr := f.Close()
	if werr != nil || cerr != nil {
		os.Remove(path)
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("could not write temp file: %v", firstErr(werr, cerr))}
		}
	}

	c := exec.Command(editorCommand(), path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{
			err:      err,
			path:     path,
			columnID: columnID,
			cardID:   crd.ID,
			original: crd.Content,
		}
	})
}

func (m *Model) finishEdit(msg editorFinishedMsg) tea.Cmd {
	if msg.path != "" {
		defer os.Remove(msg.path)
	}
	if msg.err != nil {
		slog.Warn("editor failed", "error", msg.err)
		return m.notifyError(msg.err)
	}

	data, err := os.ReadFile(msg.path)
	if err != nil {
		return m.notifyError(fmt.Errorf("could not read edited card: %w", err))
	}
	content := strings.TrimSpace(string(data))
	if content == msg.original {
		return nil
	}

	return m.apply(func(ctx context.Context) (board.Board, error) {
		return m.session.RenameCard(ctx, msg.columnID, msg.cardID, content)
	}, "Card updated")
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
