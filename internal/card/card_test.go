package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	c := New("card-1", "Buy Milk", 0)

	assert.True(t, c.Matches("milk"))
	assert.True(t, c.Matches("BUY"))
	assert.True(t, c.Matches(""))
	assert.False(t, c.Matches("bread"))
}
