package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"organizenow/internal/board"
	"organizenow/internal/config"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	W     io.Writer
	JSON  bool
	Quiet bool
}

func formatterFor(w io.Writer, flags outputFlags) *OutputFormatter {
	return &OutputFormatter{W: w, JSON: flags.json, Quiet: flags.quiet}
}

// Success reports a finished command. id is printed alone in quiet mode,
// payload is merged into the JSON object, and human is printed otherwise.
func (f *OutputFormatter) Success(id string, payload map[string]any, human string) error {
	if f.Quiet {
		if id != "" {
			_, err := fmt.Fprintln(f.W, id)
			return err
		}
		return nil
	}

	if f.JSON {
		out := map[string]any{"success": true}
		for k, v := range payload {
			out[k] = v
		}
		return json.NewEncoder(f.W).Encode(out)
	}

	_, err := fmt.Fprintln(f.W, human)
	return err
}

// Error writes err as a JSON error object. Human-readable errors are printed
// by main, so nothing is written outside JSON mode.
func (f *OutputFormatter) Error(err error) error {
	if !f.JSON {
		return nil
	}
	return json.NewEncoder(f.W).Encode(map[string]any{
		"success": false,
		"error": map[string]any{
			"code":    errorCode(err),
			"message": err.Error(),
		},
	})
}

type boardStyles struct {
	title lipgloss.Style
	id    lipgloss.Style
	rank  lipgloss.Style
}

func newBoardStyles(t config.Theme) boardStyles {
	return boardStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		id:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		rank:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)).Width(4).Align(lipgloss.Right),
	}
}

// renderBoard lists columns and their cards with ids, one per line.
func renderBoard(b board.Board, st boardStyles) string {
	if len(b.Columns) == 0 {
		return "No columns"
	}

	var sb strings.Builder
	for i, col := range b.Columns {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s %s\n", st.title.Render(fmt.Sprintf("[%d] %s", i, col.Title)), st.id.Render(col.ID))
		if len(col.Cards) == 0 {
			sb.WriteString(st.id.Render("     (empty)") + "\n")
			continue
		}
		for _, crd := range col.Cards {
			fmt.Fprintf(&sb, "%s  %s %s\n", st.rank.Render(fmt.Sprint(crd.Order)), crd.Content, st.id.Render(crd.ID))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
