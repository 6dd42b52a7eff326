package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"organizenow/internal/board"
	"organizenow/internal/card"
	"organizenow/internal/column"
	"organizenow/internal/logging"
	"organizenow/internal/storage"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data"), logging.Discard())
	require.NoError(t, err)
	return s
}

func sampleBoard() board.Board {
	return board.New(
		column.New("col-1", "To Do", card.New("card-1", "Write report", 0), card.New("card-2", "Call\nmom", 1)),
		column.New("col-2", "Done"),
	)
}

func TestNewFileStore_Logger(t *testing.T) {
	log := logging.Discard()
	s, err := NewFileStore(t.TempDir(), log)
	require.NoError(t, err)
	assert.Same(t, log, s.log, "watcher errors go to the injected logger")

	s, err = NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NotNil(t, s.log)
}

func TestLoad_NoBoard(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoBoard)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, sampleBoard()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(sampleBoard()))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, BoardFileName, entries[0].Name())
}

func TestSave_EmptyBoardIsNotNoBoard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, board.New()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Columns)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := map[string]string{
		"not json":      "{{{",
		"wrong shape":   `{"columns": []}`,
		"order gap":     `[{"id":"a","title":"A","cards":[{"id":"x","content":"x","order":1}]}]`,
		"duplicate ids": `[{"id":"a","title":"A","cards":[]},{"id":"a","title":"B","cards":[]}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.BoardPath(), []byte(content), 0644))

			_, err := s.Load(context.Background())
			assert.ErrorIs(t, err, storage.ErrCorrupt)
		})
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, sampleBoard()), context.Canceled)
}

func TestState(t *testing.T) {
	s := newTestStore(t)

	state, err := LoadState(s.Dir())
	require.NoError(t, err)
	assert.Equal(t, AppState{}, state)

	require.NoError(t, SaveState(s.Dir(), AppState{FocusedColumn: 2, FocusedCard: 5}))
	state, err = LoadState(s.Dir())
	require.NoError(t, err)
	assert.Equal(t, AppState{FocusedColumn: 2, FocusedCard: 5}, state)
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportMarkdown(&buf, sampleBoard()))

	assert.Equal(t, "# To Do\n- Write report\n- Call mom\n\n# Done\n", buf.String())
}

func TestWatch(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	// Unrelated files are ignored.
	require.NoError(t, SaveState(s.Dir(), AppState{FocusedColumn: 1}))
	require.NoError(t, s.Save(ctx, sampleBoard()))

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	for range ch {
	}
}
