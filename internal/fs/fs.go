// internal/fs/fs.go
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"organizenow/internal/board"
	"organizenow/internal/storage"
)

const (
	BoardFileName = "board.json"
	StateFileName = "state.json"
)

// AppState is the view state kept next to the board between runs.
type AppState struct {
	FocusedColumn int `json:"focused_column"`
	FocusedCard   int `json:"focused_card"`
}

// FileStore keeps the board as a JSON array of columns in a single file.
type FileStore struct {
	dir string
	log *slog.Logger
}

func NewFileStore(dir string, log *slog.Logger) (*FileStore, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) BoardPath() string {
	return filepath.Join(s.dir, BoardFileName)
}

func (s *FileStore) Load(ctx context.Context) (board.Board, error) {
	if err := ctx.Err(); err != nil {
		return board.Board{}, err
	}

	data, err := os.ReadFile(s.BoardPath())
	if err != nil {
		if os.IsNotExist(err) {
			return board.Board{}, storage.ErrNoBoard
		}
		return board.Board{}, err
	}

	var b board.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	if err := b.Validate(); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return b, nil
}

func (s *FileStore) Save(ctx context.Context, b board.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.BoardPath(), append(data, '\n'))
}

func (s *FileStore) Close() error {
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never see a half-written board.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func statePath(dir string) string {
	return filepath.Join(dir, StateFileName)
}

// SaveState writes the view state into dir, whichever backend holds the board.
func SaveState(dir string, state AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath(dir), data, 0644)
}

func LoadState(dir string) (AppState, error) {
	data, err := os.ReadFile(statePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return AppState{}, nil
		}
		return AppState{}, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, err
	}
	return state, nil
}

// ExportMarkdown renders the board as one heading per column and one bullet
// per card.
func ExportMarkdown(w io.Writer, b board.Board) error {
	var builder strings.Builder

	for i, col := range b.Columns {
		builder.WriteString(fmt.Sprintf("# %s\n", col.Title))
		for _, crd := range col.Cards {
			content := strings.ReplaceAll(crd.Content, "\n", " ")
			builder.WriteString(fmt.Sprintf("- %s\n", content))
		}
		if i < len(b.Columns)-1 {
			builder.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
