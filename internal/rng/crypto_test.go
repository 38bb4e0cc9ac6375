package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])

	a.Panics(func() { c.Intn(0) })
}

// sequence returns the queued values in order, ignoring n
type sequence struct {
	values []int
	calls  []int
}

func (s *sequence) Intn(n int) int {
	s.calls = append(s.calls, n)
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func TestShuffle(t *testing.T) {
	a := assert.New(t)

	items := []string{"a", "b", "c", "d"}
	gen := &sequence{values: []int{0, 0, 0}}
	Shuffle(gen, len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	// upper bounds shrink from n down to 2
	a.Equal([]int{4, 3, 2}, gen.calls)
	a.Equal([]string{"b", "c", "d", "a"}, items)
}

func TestShuffle_keepsElements(t *testing.T) {
	items := make([]int, 52)
	for i := range items {
		items[i] = i
	}

	Shuffle(Crypto{}, len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	assert.Equal(t, 52, len(seen))
}
