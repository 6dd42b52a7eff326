package card

import "strings"

type Card struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

func New(id, content string, order int) Card {
	return Card{ID: id, Content: content, Order: order}
}

// Matches reports whether the content contains query, ignoring case.
func (c Card) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.Content), strings.ToLower(query))
}
