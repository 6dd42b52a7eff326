package board

import "fmt"

// Move is a drag payload: either a card or a column being relocated.
type Move interface {
	isMove()
}

// CardMove drops CardID into TargetColumnID before BeforeCardID, or at the
// end when BeforeCardID is empty.
type CardMove struct {
	CardID         string
	TargetColumnID string
	BeforeCardID   string
}

// ColumnMove takes the column at From and reinserts it at To.
type ColumnMove struct {
	From int
	To   int
}

func (CardMove) isMove()   {}
func (ColumnMove) isMove() {}

func (m *Manager) Apply(b Board, mv Move) (Board, error) {
	switch mv := mv.(type) {
	case CardMove:
		return m.MoveCard(b, mv.CardID, mv.TargetColumnID, mv.BeforeCardID)
	case ColumnMove:
		return m.MoveColumn(b, mv.From, mv.To)
	default:
		return b, fmt.Errorf("unsupported move %T", mv)
	}
}

// StepCard builds the CardMove that shifts a card by one step. dCol moves it
// to a neighbouring column, keeping its row where possible; dRow swaps it with
// the card above or below. ok is false when the card is already at that edge.
func (b Board) StepCard(cardID string, dCol, dRow int) (mv CardMove, ok bool) {
	ci, ri := b.FindCard(cardID)
	if ci < 0 {
		return CardMove{}, false
	}
	mv.CardID = cardID

	switch {
	case dCol != 0:
		tc := ci + dCol
		if tc < 0 || tc >= len(b.Columns) {
			return CardMove{}, false
		}
		target := b.Columns[tc]
		mv.TargetColumnID = target.ID
		if ri < len(target.Cards) {
			mv.BeforeCardID = target.Cards[ri].ID
		}
		return mv, true

	case dRow < 0:
		if ri == 0 {
			return CardMove{}, false
		}
		col := b.Columns[ci]
		mv.TargetColumnID = col.ID
		mv.BeforeCardID = col.Cards[ri-1].ID
		return mv, true

	case dRow > 0:
		col := b.Columns[ci]
		if ri >= len(col.Cards)-1 {
			return CardMove{}, false
		}
		mv.TargetColumnID = col.ID
		if ri+2 < len(col.Cards) {
			mv.BeforeCardID = col.Cards[ri+2].ID
		}
		return mv, true
	}
	return CardMove{}, false
}
