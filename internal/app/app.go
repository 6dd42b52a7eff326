package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"organizenow/internal/board"
	"organizenow/internal/config"
	"organizenow/internal/database"
	"organizenow/internal/fs"
	"organizenow/internal/session"
	"organizenow/internal/storage"
	"organizenow/internal/tui"
)

// SQLiteFileName is the database file inside the data directory.
const SQLiteFileName = "board.db"

var ErrUnknownBackend = errors.New("unknown storage backend")

// OpenStore opens the storage adapter selected by cfg.
func OpenStore(ctx context.Context, cfg config.Storage, log *slog.Logger) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		store, err := fs.NewFileStore(cfg.Dir, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		store, err := database.Open(ctx, filepath.Join(cfg.Dir, SQLiteFileName), log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// OpenSession opens the configured store and loads the board into a new
// session. Closing the session's store is up to the caller.
func OpenSession(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...session.Option) (*session.Session, error) {
	store, err := OpenStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	mgr := board.NewManager(board.WithLogger(log))
	s, err := session.New(ctx, store, mgr, log, opts...)
	if err != nil {
		if cerr := store.Close(); cerr != nil {
			log.Error("failed to close store", "error", cerr)
		}
		return nil, err
	}
	return s, nil
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := OpenSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Store().Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	state, err := fs.LoadState(cfg.Storage.Dir)
	if err != nil {
		// Non-fatal, we can continue with defaults
		log.Warn("could not load state", "error", err)
	}

	var changes <-chan struct{}
	if w, ok := s.Store().(storage.Watcher); ok {
		changes, err = w.Watch(ctx)
		if err != nil {
			log.Warn("live reload disabled", "error", err)
		}
	}

	model := tui.NewModel(ctx, s, tui.Options{
		Theme:   cfg.Theme,
		State:   state,
		Changes: changes,
	})
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if m, ok := finalModel.(*tui.Model); ok {
		state := fs.AppState{FocusedColumn: m.FocusedColumn(), FocusedCard: m.FocusedCard()}
		if err := fs.SaveState(cfg.Storage.Dir, state); err != nil {
			return fmt.Errorf("could not save state: %w", err)
		}
	}
	return nil
}
