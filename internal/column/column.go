package column

import "organizenow/internal/card"

type Column struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Cards []card.Card `json:"cards"`
}

func New(id, title string, cards ...card.Card) Column {
	c := Column{
		ID:    id,
		Title: title,
		Cards: cards,
	}
	if c.Cards == nil {
		c.Cards = []card.Card{}
	}
	c.Rerank()
	return c
}

func (c Column) CardCount() int {
	return len(c.Cards)
}

// IndexOf returns the position of the card with the given id, or -1.
func (c Column) IndexOf(cardID string) int {
	for i, crd := range c.Cards {
		if crd.ID == cardID {
			return i
		}
	}
	return -1
}

// Rerank sets every card's Order to its position in Cards.
func (c *Column) Rerank() {
	for i := range c.Cards {
		c.Cards[i].Order = i
	}
}

func (c Column) Clone() Column {
	cards := make([]card.Card, len(c.Cards))
	copy(cards, c.Cards)
	c.Cards = cards
	return c
}
