package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"organizenow/internal/board"
	"organizenow/internal/card"
	"organizenow/internal/column"
	"organizenow/internal/storage"
)

const savedAtKey = "saved_at"

// Store keeps the board in SQLite. Every Save replaces the stored board in a
// single transaction.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, log: log}
}

// Open initializes the database at path and wraps it in a Store.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	db, err := InitDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewStore(db, log), nil
}

func (s *Store) Load(ctx context.Context) (board.Board, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM board_meta WHERE key = ?", savedAtKey).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return board.Board{}, storage.ErrNoBoard
	}
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to read board metadata: %w", err)
	}

	b, err := s.loadColumns(ctx)
	if err != nil {
		return board.Board{}, err
	}
	if err := s.loadCards(ctx, &b); err != nil {
		return board.Board{}, err
	}

	if err := b.Validate(); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return b, nil
}

// loadColumns and loadCards each drain their rows before returning; the pool
// holds a single connection.
func (s *Store) loadColumns(ctx context.Context) (board.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title FROM columns ORDER BY position")
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	b := board.New()
	for rows.Next() {
		var col column.Column
		if err := rows.Scan(&col.ID, &col.Title); err != nil {
			return board.Board{}, err
		}
		col.Cards = []card.Card{}
		b.Columns = append(b.Columns, col)
	}
	return b, rows.Err()
}

func (s *Store) loadCards(ctx context.Context, b *board.Board) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id, column_id, content, position FROM cards ORDER BY column_id, position")
	if err != nil {
		return fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var crd card.Card
		var columnID string
		if err := rows.Scan(&crd.ID, &columnID, &crd.Content, &crd.Order); err != nil {
			return err
		}
		ci := b.ColumnIndex(columnID)
		if ci < 0 {
			return fmt.Errorf("%w: card %q references unknown column %q", storage.ErrCorrupt, crd.ID, columnID)
		}
		b.Columns[ci].Cards = append(b.Columns[ci].Cards, crd)
	}
	return rows.Err()
}

func (s *Store) Save(ctx context.Context, b board.Board) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			s.log.Error("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM columns"); err != nil {
		return fmt.Errorf("failed to clear columns: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, "INSERT INTO columns (id, title, position) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer colStmt.Close()

	cardStmt, err := tx.PrepareContext(ctx, "INSERT INTO cards (id, column_id, content, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	for i, col := range b.Columns {
		if _, err := colStmt.ExecContext(ctx, col.ID, col.Title, i); err != nil {
			return fmt.Errorf("failed to insert column %q: %w", col.ID, err)
		}
		for _, crd := range col.Cards {
			if _, err := cardStmt.ExecContext(ctx, crd.ID, col.ID, crd.Content, crd.Order); err != nil {
				return fmt.Errorf("failed to insert card %q: %w", crd.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO board_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		savedAtKey, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("failed to update board metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
