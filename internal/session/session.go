// Package session holds the one authoritative board of a running program.
// Each mutation goes through the board manager, the result replaces the held
// board, and the new board is handed to the store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"organizenow/internal/board"
	"organizenow/internal/storage"
)

// ErrNotSaved wraps a store failure that happened after a successful
// mutation. The session keeps the new board.
var ErrNotSaved = errors.New("board changed but could not be saved")

// Op is a single board mutation.
type Op func(m *board.Manager, b board.Board) (board.Board, error)

type Session struct {
	mu     sync.Mutex
	store  storage.Store
	mgr    *board.Manager
	board  board.Board
	log    *slog.Logger
	strict bool
}

type Option func(*Session)

// WithStrictLoad makes New fail with storage.ErrCorrupt instead of replacing
// an unusable saved board with the default one.
func WithStrictLoad() Option {
	return func(s *Session) { s.strict = true }
}

// New loads the board from store. When nothing was saved yet the default
// board is written right away so its ids stay stable across runs. An unusable
// saved board is also replaced by the default, but the stored copy is left
// alone until the first mutation.
func New(ctx context.Context, store storage.Store, mgr *board.Manager, log *slog.Logger, opts ...Option) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{store: store, mgr: mgr, log: log}
	for _, opt := range opts {
		opt(s)
	}

	b, err := store.Load(ctx)
	switch {
	case err == nil:
		log.Info("board loaded", "columns", len(b.Columns), "cards", b.CardCount())
	case errors.Is(err, storage.ErrNoBoard):
		log.Info("no saved board, starting from defaults")
		b = mgr.Default()
		if err := store.Save(ctx, b); err != nil {
			log.Error("failed to save default board", "error", err)
		}
	case errors.Is(err, storage.ErrCorrupt) && s.strict:
		return nil, fmt.Errorf("failed to load board: %w", err)
	case errors.Is(err, storage.ErrCorrupt):
		log.Warn("saved board is unusable, starting from defaults", "error", err)
		b = mgr.Default()
	default:
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	s.board = b
	return s, nil
}

// Board returns a copy of the current board.
func (s *Session) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *Session) Store() storage.Store {
	return s.store
}

// Apply runs op against the current board. On error the board is unchanged,
// except for ErrNotSaved where the returned board is the new current one.
func (s *Session) Apply(ctx context.Context, op Op) (board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.mgr, s.board)
	if err != nil {
		s.log.Debug("operation rejected", "error", err)
		return s.board.Clone(), err
	}
	s.board = next

	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("failed to save board", "error", err)
		return next.Clone(), fmt.Errorf("%w: %v", ErrNotSaved, err)
	}
	return next.Clone(), nil
}

// Save writes the current board without changing it.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, s.board)
}

// Reload replaces the current board with the stored one. changed is false
// when the stored board is identical, which is the case for our own saves.
func (s *Session) Reload(ctx context.Context) (changed bool, err error) {
	b, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Equal(s.board) {
		return false, nil
	}
	s.board = b
	s.log.Info("board reloaded from store", "columns", len(b.Columns), "cards", b.CardCount())
	return true, nil
}

func (s *Session) AddColumn(ctx context.Context, title string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.AddColumn(b, title)
	})
}

func (s *Session) RemoveColumn(ctx context.Context, columnID string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.RemoveColumn(b, columnID)
	})
}

func (s *Session) RenameColumn(ctx context.Context, columnID, title string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.RenameColumn(b, columnID, title)
	})
}

func (s *Session) AddCard(ctx context.Context, columnID, content string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.AddCard(b, columnID, content)
	})
}

func (s *Session) RemoveCard(ctx context.Context, columnID, cardID string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.RemoveCard(b, columnID, cardID)
	})
}

func (s *Session) RenameCard(ctx context.Context, columnID, cardID, content string) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.RenameCard(b, columnID, cardID, content)
	})
}

func (s *Session) Move(ctx context.Context, mv board.Move) (board.Board, error) {
	return s.Apply(ctx, func(m *board.Manager, b board.Board) (board.Board, error) {
		return m.Apply(b, mv)
	})
}
