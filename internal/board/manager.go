package board

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"organizenow/internal/card"
	"organizenow/internal/column"
)

// IDFunc returns a new identifier for an entity of the given kind
// ("col" or "card").
type IDFunc func(kind string) string

// Manager applies mutations to a Board. It keeps no board of its own: every
// operation clones its input and returns the result, so a failed call leaves
// the caller's board untouched.
type Manager struct {
	newID IDFunc
	log   *slog.Logger
}

type Option func(*Manager)

func WithIDFunc(f IDFunc) Option {
	return func(m *Manager) { m.newID = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{newID: uuidID, log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func uuidID(kind string) string {
	return kind + "-" + uuid.NewString()
}

func (m *Manager) freshID(b Board, kind string) string {
	for {
		id := m.newID(kind)
		if !b.hasID(id) {
			return id
		}
	}
}

// Default returns the starter board used when nothing has been saved yet.
func (m *Manager) Default() Board {
	b := New()
	todo := column.New(m.freshID(b, "col"), "To Do")
	b.Columns = append(b.Columns, todo)
	for _, content := range []string{"Example Task 1", "Example Task 2"} {
		b.Columns[0].Cards = append(b.Columns[0].Cards, card.New(m.freshID(b, "card"), content, len(b.Columns[0].Cards)))
	}
	for _, title := range []string{"In Progress", "Done"} {
		b.Columns = append(b.Columns, column.New(m.freshID(b, "col"), title))
	}
	return b
}

func requireText(what, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s cannot be empty: %w", what, ErrValidation)
	}
	return s, nil
}

func columnNotFound(id string) error {
	return fmt.Errorf("column %q: %w", id, ErrNotFound)
}

func cardNotFound(id string) error {
	return fmt.Errorf("card %q: %w", id, ErrNotFound)
}

func (m *Manager) AddColumn(b Board, title string) (Board, error) {
	title, err := requireText("column title", title)
	if err != nil {
		return b, err
	}

	out := b.Clone()
	col := column.New(m.freshID(b, "col"), title)
	out.Columns = append(out.Columns, col)
	m.log.Debug("column added", "column", col.ID, "title", title)
	return out, nil
}

func (m *Manager) RemoveColumn(b Board, columnID string) (Board, error) {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b, columnNotFound(columnID)
	}

	out := b.Clone()
	out.Columns = slices.Delete(out.Columns, idx, idx+1)
	m.log.Debug("column removed", "column", columnID, "cards", b.Columns[idx].CardCount())
	return out, nil
}

func (m *Manager) RenameColumn(b Board, columnID, title string) (Board, error) {
	title, err := requireText("column title", title)
	if err != nil {
		return b, err
	}
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b, columnNotFound(columnID)
	}

	out := b.Clone()
	out.Columns[idx].Title = title
	m.log.Debug("column renamed", "column", columnID, "title", title)
	return out, nil
}

func (m *Manager) AddCard(b Board, columnID, content string) (Board, error) {
	content, err := requireText("card content", content)
	if err != nil {
		return b, err
	}
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return b, columnNotFound(columnID)
	}

	out := b.Clone()
	col := &out.Columns[idx]
	crd := card.New(m.freshID(b, "card"), content, len(col.Cards))
	col.Cards = append(col.Cards, crd)
	m.log.Debug("card added", "column", columnID, "card", crd.ID, "order", crd.Order)
	return out, nil
}

func (m *Manager) RemoveCard(b Board, columnID, cardID string) (Board, error) {
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b, columnNotFound(columnID)
	}
	ri := b.Columns[ci].IndexOf(cardID)
	if ri < 0 {
		return b, cardNotFound(cardID)
	}

	out := b.Clone()
	col := &out.Columns[ci]
	col.Cards = slices.Delete(col.Cards, ri, ri+1)
	col.Rerank()
	m.log.Debug("card removed", "column", columnID, "card", cardID)
	return out, nil
}

func (m *Manager) RenameCard(b Board, columnID, cardID, content string) (Board, error) {
	content, err := requireText("card content", content)
	if err != nil {
		return b, err
	}
	ci := b.ColumnIndex(columnID)
	if ci < 0 {
		return b, columnNotFound(columnID)
	}
	ri := b.Columns[ci].IndexOf(cardID)
	if ri < 0 {
		return b, cardNotFound(cardID)
	}

	out := b.Clone()
	out.Columns[ci].Cards[ri].Content = content
	m.log.Debug("card renamed", "column", columnID, "card", cardID)
	return out, nil
}

// MoveCard relocates a card so that it sits immediately before beforeCardID
// in the target column, or at the end of it when beforeCardID is empty.
// beforeCardID must name a card in the target column.
func (m *Manager) MoveCard(b Board, cardID, targetColumnID, beforeCardID string) (Board, error) {
	src, si := b.FindCard(cardID)
	if src < 0 {
		return b, cardNotFound(cardID)
	}
	dst := b.ColumnIndex(targetColumnID)
	if dst < 0 {
		return b, columnNotFound(targetColumnID)
	}
	if beforeCardID != "" && b.Columns[dst].IndexOf(beforeCardID) < 0 {
		return b, fmt.Errorf("card %q in column %q: %w", beforeCardID, targetColumnID, ErrNotFound)
	}

	out := b.Clone()
	if beforeCardID == cardID {
		return out, nil
	}

	moved := out.Columns[src].Cards[si]
	out.Columns[src].Cards = slices.Delete(out.Columns[src].Cards, si, si+1)

	target := &out.Columns[dst]
	pos := len(target.Cards)
	if beforeCardID != "" {
		pos = target.IndexOf(beforeCardID)
	}
	target.Cards = slices.Insert(target.Cards, pos, moved)

	out.Columns[src].Rerank()
	target.Rerank()
	m.log.Debug("card moved", "card", cardID, "from", b.Columns[src].ID, "to", targetColumnID, "position", pos)
	return out, nil
}

func (m *Manager) MoveColumn(b Board, from, to int) (Board, error) {
	n := len(b.Columns)
	if from < 0 || from >= n {
		return b, fmt.Errorf("from index %d of %d columns: %w", from, n, ErrOutOfRange)
	}
	if to < 0 || to >= n {
		return b, fmt.Errorf("to index %d of %d columns: %w", to, n, ErrOutOfRange)
	}

	out := b.Clone()
	if from == to {
		return out, nil
	}
	col := out.Columns[from]
	out.Columns = slices.Delete(out.Columns, from, from+1)
	out.Columns = slices.Insert(out.Columns, to, col)
	m.log.Debug("column moved", "column", col.ID, "from", from, "to", to)
	return out, nil
}
