// Package storage defines the contract between the board session and the
// adapters that persist it.
package storage

import (
	"context"
	"errors"

	"organizenow/internal/board"
)

var (
	// ErrNoBoard means nothing has been saved yet.
	ErrNoBoard = errors.New("no saved board")

	// ErrCorrupt means a saved board exists but cannot be used.
	ErrCorrupt = errors.New("saved board is corrupt")
)

// Store loads and saves whole boards.
type Store interface {
	Load(ctx context.Context) (board.Board, error)
	Save(ctx context.Context, b board.Board) error
	Close() error
}

// Watcher is implemented by stores that can report changes made by other
// processes. The channel is closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
