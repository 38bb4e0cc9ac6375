package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	var h Hand
	h.AddCard(CardFromString("As"))
	h.AddCard(CardFromString("3c"))
	assert.Equal(t, "As,3c", h.String())
}

func TestHand_Clone(t *testing.T) {
	a := assert.New(t)

	h := Hand(CardsFromString("9d,Kc"))
	clone := h.Clone()
	clone[0] = CardFromString("2s")
	a.Equal("9d,Kc", h.String())

	var empty Hand
	b, _ := json.Marshal(empty.Clone())
	a.Equal("[]", string(b))
}
