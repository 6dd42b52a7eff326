package board

import (
	"encoding/json"
	"fmt"

	"organizenow/internal/card"
	"organizenow/internal/column"
)

// Board is the ordered set of columns. Position in Columns is the display order.
type Board struct {
	Columns []column.Column
}

func New(columns ...column.Column) Board {
	if columns == nil {
		columns = []column.Column{}
	}
	return Board{Columns: columns}
}

func (b Board) Clone() Board {
	cols := make([]column.Column, len(b.Columns))
	for i, col := range b.Columns {
		cols[i] = col.Clone()
	}
	return Board{Columns: cols}
}

// ColumnIndex returns the position of the column with the given id, or -1.
func (b Board) ColumnIndex(columnID string) int {
	for i, col := range b.Columns {
		if col.ID == columnID {
			return i
		}
	}
	return -1
}

// FindCard locates a card anywhere on the board. Both indexes are -1 when
// the card does not exist.
func (b Board) FindCard(cardID string) (colIdx, cardIdx int) {
	for i, col := range b.Columns {
		if j := col.IndexOf(cardID); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += col.CardCount()
	}
	return n
}

func (b Board) hasID(id string) bool {
	if b.ColumnIndex(id) >= 0 {
		return true
	}
	i, _ := b.FindCard(id)
	return i >= 0
}

// Equal compares two boards column by column and card by card.
func (b Board) Equal(other Board) bool {
	if len(b.Columns) != len(other.Columns) {
		return false
	}
	for i, col := range b.Columns {
		o := other.Columns[i]
		if col.ID != o.ID || col.Title != o.Title || len(col.Cards) != len(o.Cards) {
			return false
		}
		for j, crd := range col.Cards {
			if crd != o.Cards[j] {
				return false
			}
		}
	}
	return true
}

// Validate checks id uniqueness and that every column's orders are 0..n-1
// in sequence order.
func (b Board) Validate() error {
	seen := make(map[string]struct{}, len(b.Columns)+b.CardCount())
	for _, col := range b.Columns {
		if col.ID == "" {
			return fmt.Errorf("column %q has no id", col.Title)
		}
		if _, dup := seen[col.ID]; dup {
			return fmt.Errorf("duplicate id %q", col.ID)
		}
		seen[col.ID] = struct{}{}

		for i, crd := range col.Cards {
			if crd.ID == "" {
				return fmt.Errorf("card at %d in column %q has no id", i, col.ID)
			}
			if _, dup := seen[crd.ID]; dup {
				return fmt.Errorf("duplicate id %q", crd.ID)
			}
			seen[crd.ID] = struct{}{}
			if crd.Order != i {
				return fmt.Errorf("card %q in column %q has order %d at position %d", crd.ID, col.ID, crd.Order, i)
			}
		}
	}
	return nil
}

// MarshalJSON writes the board as a bare array of columns.
func (b Board) MarshalJSON() ([]byte, error) {
	cols := b.Columns
	if cols == nil {
		cols = []column.Column{}
	}
	return json.Marshal(cols)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var cols []column.Column
	if err := json.Unmarshal(data, &cols); err != nil {
		return err
	}
	if cols == nil {
		cols = []column.Column{}
	}
	for i := range cols {
		if cols[i].Cards == nil {
			cols[i].Cards = []card.Card{}
		}
	}
	b.Columns = cols
	return nil
}
