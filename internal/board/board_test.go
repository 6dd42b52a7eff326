package board

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"organizenow/internal/card"
	"organizenow/internal/column"
)

func TestBoardJSONShape(t *testing.T) {
	data, err := json.Marshal(fixture())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"A","title":"Alpha","cards":[
			{"id":"c1","content":"one","order":0},
			{"id":"c2","content":"two","order":1}
		]},
		{"id":"B","title":"Beta","cards":[]}
	]`, string(data))

	var back Board
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(fixture()))
}

func TestBoardJSON_EmptyAndNullCards(t *testing.T) {
	data, err := json.Marshal(Board{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var b Board
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"A","title":"a","cards":null}]`), &b))
	require.Len(t, b.Columns, 1)
	assert.NotNil(t, b.Columns[0].Cards)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		ok    bool
	}{
		{"valid", fixture(), true},
		{"empty", New(), true},
		{"duplicate column id", New(column.New("A", "a"), column.New("A", "b")), false},
		{"card id clashes with column id", New(column.New("A", "a", card.New("A", "x", 0))), false},
		{"duplicate card across columns", New(
			column.New("A", "a", card.New("c1", "x", 0)),
			column.New("B", "b", card.New("c1", "y", 0)),
		), false},
		{"gap in orders", Board{Columns: []column.Column{{ID: "A", Cards: []card.Card{{ID: "c1", Order: 0}, {ID: "c2", Order: 2}}}}}, false},
		{"missing id", Board{Columns: []column.Column{{Title: "x"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := fixture()
	c := b.Clone()
	c.Columns[0].Cards[0].Content = "changed"
	c.Columns[1].Title = "changed"

	assert.Equal(t, "one", b.Columns[0].Cards[0].Content)
	assert.Equal(t, "Beta", b.Columns[1].Title)
}

func TestFindCard(t *testing.T) {
	b := fixture()

	ci, ri := b.FindCard("c2")
	assert.Equal(t, 0, ci)
	assert.Equal(t, 1, ri)

	ci, ri = b.FindCard("nope")
	assert.Equal(t, -1, ci)
	assert.Equal(t, -1, ri)
}
