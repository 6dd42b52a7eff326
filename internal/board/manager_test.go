package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"organizenow/internal/card"
	"organizenow/internal/column"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func counterIDs() IDFunc {
	n := 0
	return func(kind string) string {
		n++
		return fmt.Sprintf("%s-%d", kind, n)
	}
}

func newTestManager() *Manager {
	return NewManager(WithIDFunc(counterIDs()))
}

// fixture builds A:[c1,c2], B:[].
func fixture() Board {
	return New(
		column.New("A", "Alpha", card.New("c1", "one", 0), card.New("c2", "two", 1)),
		column.New("B", "Beta"),
	)
}

func cardIDs(col column.Column) []string {
	ids := make([]string, 0, len(col.Cards))
	for _, c := range col.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func assertDense(t *testing.T, b Board) {
	t.Helper()
	for _, col := range b.Columns {
		for i, c := range col.Cards {
			assert.Equal(t, i, c.Order, "column %s card %s", col.ID, c.ID)
		}
	}
	assert.NoError(t, b.Validate())
}

// ============================================================================
// COLUMN OPERATIONS
// ============================================================================

func TestAddColumn(t *testing.T) {
	m := newTestManager()
	b := fixture()

	out, err := m.AddColumn(b, "  Gamma  ")
	require.NoError(t, err)
	require.Len(t, out.Columns, 3)
	assert.Equal(t, "Gamma", out.Columns[2].Title)
	assert.NotEmpty(t, out.Columns[2].ID)
	assert.Empty(t, out.Columns[2].Cards)
	assert.Len(t, b.Columns, 2, "input board must not change")
}

func TestAddColumn_Empty(t *testing.T) {
	m := newTestManager()
	b := fixture()

	for _, title := range []string{"", "   ", "\t\n"} {
		out, err := m.AddColumn(b, title)
		assert.ErrorIs(t, err, ErrValidation)
		assert.True(t, out.Equal(fixture()))
	}
}

func TestRemoveColumn(t *testing.T) {
	m := newTestManager()

	out, err := m.RemoveColumn(fixture(), "A")
	require.NoError(t, err)
	require.Len(t, out.Columns, 1)
	assert.Equal(t, "B", out.Columns[0].ID)
	assert.Equal(t, 0, out.CardCount())

	_, err = m.RemoveColumn(fixture(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameColumn(t *testing.T) {
	m := newTestManager()

	tests := []struct {
		name    string
		id      string
		title   string
		wantErr error
	}{
		{"renames", "B", "Done", nil},
		{"trims", "B", "  Done ", nil},
		{"empty title", "B", " ", ErrValidation},
		{"missing column", "Z", "Done", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fixture()
			out, err := m.RenameColumn(b, tt.id, tt.title)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Beta", b.Columns[1].Title)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Done", out.Columns[1].Title)
			assert.Equal(t, "Beta", b.Columns[1].Title)
		})
	}
}

func TestMoveColumn(t *testing.T) {
	m := newTestManager()
	b := New(column.New("A", "a"), column.New("B", "b"), column.New("C", "c"))

	out, err := m.MoveColumn(b, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, []string{out.Columns[0].ID, out.Columns[1].ID, out.Columns[2].ID})

	out, err = m.MoveColumn(b, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, []string{out.Columns[0].ID, out.Columns[1].ID, out.Columns[2].ID})

	assert.Equal(t, "A", b.Columns[0].ID, "input board must not change")
}

func TestMoveColumn_SameIndexIsNoop(t *testing.T) {
	m := newTestManager()
	b := New(column.New("A", "a"), column.New("B", "b"), column.New("C", "c"))

	for i := range b.Columns {
		out, err := m.MoveColumn(b, i, i)
		require.NoError(t, err)
		assert.True(t, out.Equal(b))
	}
}

func TestMoveColumn_OutOfRange(t *testing.T) {
	m := newTestManager()
	b := fixture()

	for _, tc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		_, err := m.MoveColumn(b, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "from=%d to=%d", tc[0], tc[1])
	}

	_, err := m.MoveColumn(New(), 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// ============================================================================
// CARD OPERATIONS
// ============================================================================

func TestAddCard_AppendsWithNextOrder(t *testing.T) {
	m := newTestManager()

	out, err := m.AddCard(fixture(), "A", "Buy milk")
	require.NoError(t, err)
	col := out.Columns[0]
	require.Len(t, col.Cards, 3)
	assert.Equal(t, 2, col.Cards[2].Order)
	assert.Equal(t, "Buy milk", col.Cards[2].Content)
	assertDense(t, out)
}

func TestAddCard_Errors(t *testing.T) {
	m := newTestManager()

	_, err := m.AddCard(fixture(), "A", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = m.AddCard(fixture(), "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveCard_RerankMiddle(t *testing.T) {
	m := newTestManager()
	b := New(column.New("A", "a",
		card.New("c1", "one", 0),
		card.New("c2", "two", 1),
		card.New("c3", "three", 2),
	))

	out, err := m.RemoveCard(b, "A", "c2")
	require.NoError(t, err)
	col := out.Columns[0]
	assert.Equal(t, []string{"c1", "c3"}, cardIDs(col))
	assert.Equal(t, 0, col.Cards[0].Order)
	assert.Equal(t, 1, col.Cards[1].Order)
	assert.Len(t, b.Columns[0].Cards, 3, "input board must not change")
}

func TestRemoveCard_NotFound(t *testing.T) {
	m := newTestManager()

	_, err := m.RemoveCard(fixture(), "Z", "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.RemoveCard(fixture(), "A", "zz")
	assert.ErrorIs(t, err, ErrNotFound)

	// The card exists, but not in that column.
	_, err = m.RemoveCard(fixture(), "B", "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveThenAdd_DoesNotReuseID(t *testing.T) {
	m := NewManager()
	b, err := m.AddCard(fixture(), "B", "Buy milk")
	require.NoError(t, err)
	oldID := b.Columns[1].Cards[0].ID

	b, err = m.RemoveCard(b, "B", oldID)
	require.NoError(t, err)
	b, err = m.AddCard(b, "B", "Buy milk")
	require.NoError(t, err)

	assert.NotEqual(t, oldID, b.Columns[1].Cards[0].ID)
}

func TestFreshIDSkipsExisting(t *testing.T) {
	ids := []string{"c1", "A", "card-new"}
	m := NewManager(WithIDFunc(func(string) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	out, err := m.AddCard(fixture(), "B", "x")
	require.NoError(t, err)
	assert.Equal(t, "card-new", out.Columns[1].Cards[0].ID)
}

func TestRenameCard(t *testing.T) {
	m := newTestManager()
	b := fixture()

	out, err := m.RenameCard(b, "A", "c2", " updated ")
	require.NoError(t, err)
	assert.Equal(t, card.Card{ID: "c2", Content: "updated", Order: 1}, out.Columns[0].Cards[1])
	assert.Equal(t, "two", b.Columns[0].Cards[1].Content)

	_, err = m.RenameCard(b, "A", "c2", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = m.RenameCard(b, "B", "c2", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.RenameCard(b, "Z", "c2", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ============================================================================
// MOVE CARD
// ============================================================================

func TestMoveCard_ToEmptyColumnEnd(t *testing.T) {
	m := newTestManager()

	out, err := m.MoveCard(fixture(), "c1", "B", "")
	require.NoError(t, err)
	assert.Equal(t, []card.Card{{ID: "c2", Content: "two", Order: 0}}, out.Columns[0].Cards)
	assert.Equal(t, []card.Card{{ID: "c1", Content: "one", Order: 0}}, out.Columns[1].Cards)
}

func TestMoveCard_WithinColumn(t *testing.T) {
	m := newTestManager()
	b := New(column.New("A", "a",
		card.New("c1", "1", 0),
		card.New("c2", "2", 1),
		card.New("c3", "3", 2),
		card.New("c4", "4", 3),
	))

	tests := []struct {
		name   string
		cardID string
		before string
		want   []string
	}{
		{"down before later card", "c1", "c4", []string{"c2", "c3", "c1", "c4"}},
		{"up before earlier card", "c4", "c2", []string{"c1", "c4", "c2", "c3"}},
		{"to end", "c2", "", []string{"c1", "c3", "c4", "c2"}},
		{"to front", "c3", "c1", []string{"c3", "c1", "c2", "c4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.MoveCard(b, tt.cardID, "A", tt.before)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cardIDs(out.Columns[0]))
			assertDense(t, out)
		})
	}
}

func TestMoveCard_AcrossColumnsBeforeCard(t *testing.T) {
	m := newTestManager()
	b := New(
		column.New("A", "a", card.New("c1", "1", 0), card.New("c2", "2", 1)),
		column.New("B", "b", card.New("c3", "3", 0), card.New("c4", "4", 1)),
	)

	out, err := m.MoveCard(b, "c1", "B", "c4")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, cardIDs(out.Columns[0]))
	assert.Equal(t, []string{"c3", "c1", "c4"}, cardIDs(out.Columns[1]))
	assertDense(t, out)
}

func TestMoveCard_AlreadySatisfiedIsNoop(t *testing.T) {
	m := newTestManager()
	b := fixture()

	// c1 already sits immediately before c2.
	out, err := m.MoveCard(b, "c1", "A", "c2")
	require.NoError(t, err)
	assert.True(t, out.Equal(b))

	// c2 is already last.
	out, err = m.MoveCard(b, "c2", "A", "")
	require.NoError(t, err)
	assert.True(t, out.Equal(b))

	// Before itself.
	out, err = m.MoveCard(b, "c2", "A", "c2")
	require.NoError(t, err)
	assert.True(t, out.Equal(b))
}

func TestMoveCard_IsRepeatable(t *testing.T) {
	m := newTestManager()

	once, err := m.MoveCard(fixture(), "c2", "A", "c1")
	require.NoError(t, err)
	twice, err := m.MoveCard(once, "c2", "A", "c1")
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestMoveCard_NotFound(t *testing.T) {
	m := newTestManager()
	b := fixture()

	tests := []struct {
		name, cardID, target, before string
	}{
		{"missing card", "zz", "B", ""},
		{"missing column", "c1", "Z", ""},
		{"before card missing", "c1", "B", "zz"},
		{"before card in other column", "c1", "B", "c2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := m.MoveCard(b, tt.cardID, tt.target, tt.before)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.True(t, out.Equal(fixture()))
		})
	}
}

func TestOrdersStayDenseUnderMixedOperations(t *testing.T) {
	m := newTestManager()
	b := fixture()
	var err error

	steps := []func(Board) (Board, error){
		func(b Board) (Board, error) { return m.AddCard(b, "A", "three") },
		func(b Board) (Board, error) { return m.AddCard(b, "B", "four") },
		func(b Board) (Board, error) { return m.MoveCard(b, "c1", "B", "") },
		func(b Board) (Board, error) { return m.RemoveCard(b, "A", "c2") },
		func(b Board) (Board, error) { return m.AddCard(b, "A", "five") },
		func(b Board) (Board, error) { return m.MoveCard(b, "c1", "A", b.Columns[0].Cards[0].ID) },
		func(b Board) (Board, error) { return m.MoveColumn(b, 0, 1) },
		func(b Board) (Board, error) { return m.RemoveCard(b, "A", "c1") },
	}
	for i, step := range steps {
		b, err = step(b)
		require.NoError(t, err, "step %d", i)
		assertDense(t, b)
	}
	assert.Equal(t, 3, b.CardCount())
}

// ============================================================================
// DEFAULTS AND DRAG PAYLOADS
// ============================================================================

func TestDefault(t *testing.T) {
	b := NewManager().Default()

	require.Len(t, b.Columns, 3)
	assert.Equal(t, "To Do", b.Columns[0].Title)
	assert.Equal(t, "In Progress", b.Columns[1].Title)
	assert.Equal(t, "Done", b.Columns[2].Title)
	require.Len(t, b.Columns[0].Cards, 2)
	assert.Equal(t, "Example Task 1", b.Columns[0].Cards[0].Content)
	assert.Equal(t, "Example Task 2", b.Columns[0].Cards[1].Content)
	assertDense(t, b)
}

func TestApply(t *testing.T) {
	m := newTestManager()

	out, err := m.Apply(fixture(), CardMove{CardID: "c1", TargetColumnID: "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, cardIDs(out.Columns[1]))

	out, err = m.Apply(out, ColumnMove{From: 1, To: 0})
	require.NoError(t, err)
	assert.Equal(t, "B", out.Columns[0].ID)

	_, err = m.Apply(out, ColumnMove{From: 0, To: 9})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStepCard(t *testing.T) {
	b := New(
		column.New("A", "a", card.New("c1", "1", 0), card.New("c2", "2", 1), card.New("c3", "3", 2)),
		column.New("B", "b", card.New("c4", "4", 0)),
	)

	tests := []struct {
		name       string
		cardID     string
		dCol, dRow int
		want       CardMove
		ok         bool
	}{
		{"down in middle", "c1", 0, 1, CardMove{"c1", "A", "c3"}, true},
		{"down to end", "c2", 0, 1, CardMove{"c2", "A", ""}, true},
		{"down at bottom", "c3", 0, 1, CardMove{}, false},
		{"up", "c2", 0, -1, CardMove{"c2", "A", "c1"}, true},
		{"up at top", "c1", 0, -1, CardMove{}, false},
		{"right keeps row", "c1", 1, 0, CardMove{"c1", "B", "c4"}, true},
		{"right past last row", "c3", 1, 0, CardMove{"c3", "B", ""}, true},
		{"left at first column", "c1", -1, 0, CardMove{}, false},
		{"left", "c4", -1, 0, CardMove{"c4", "A", "c1"}, true},
		{"unknown card", "zz", 0, 1, CardMove{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, ok := b.StepCard(tt.cardID, tt.dCol, tt.dRow)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, mv)
		})
	}
}

func TestStepCard_DownThenUpRestores(t *testing.T) {
	m := newTestManager()
	b := New(column.New("A", "a", card.New("c1", "1", 0), card.New("c2", "2", 1), card.New("c3", "3", 2)))

	mv, ok := b.StepCard("c1", 0, 1)
	require.True(t, ok)
	down, err := m.Apply(b, mv)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1", "c3"}, cardIDs(down.Columns[0]))

	mv, ok = down.StepCard("c1", 0, -1)
	require.True(t, ok)
	up, err := m.Apply(down, mv)
	require.NoError(t, err)
	assert.True(t, up.Equal(b))
}
