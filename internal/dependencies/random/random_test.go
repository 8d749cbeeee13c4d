package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixed []int

func (f *fixed) Intn(n int) int {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestShuffleUsesDrawsFromTheEnd(t *testing.T) {
	items := []string{"a", "b", "c"}
	// i=2 swaps with 0, i=1 stays
	draws := fixed{0, 1}
	Shuffle(&draws, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	assert.Equal(t, []string{"c", "b", "a"}, items)
	assert.Empty(t, draws)
}

func TestCryptoRandomIntnRange(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		v := r.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	assert.Equal(t, 0, r.Intn(0))
}
