package tetris_test

import (
	"testing"

	"github.com/plus3/refocus/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s tetris.Supply, n int) ([]tetris.Kind, tetris.Supply) {
	out := make([]tetris.Kind, 0, n)
	for range n {
		var k tetris.Kind
		k, s = s.Next()
		out = append(out, k)
	}
	return out, s
}

func TestSupplyFirstBagIsAPermutation(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		kinds, _ := drain(tetris.NewSupply(seed), 7)
		assert.ElementsMatch(t, tetris.Kinds[:], kinds, "seed %d", seed)
	}
}

func TestSupplyEveryBagIsAPermutation(t *testing.T) {
	kinds, _ := drain(tetris.NewSupply(42), 7*30)

	for bag := range 30 {
		assert.ElementsMatch(t, tetris.Kinds[:], kinds[bag*7:(bag+1)*7], "bag %d", bag)
	}
}

func TestSupplyRepeatGapIsBounded(t *testing.T) {
	kinds, _ := drain(tetris.NewSupply(7), 7*100)

	last := map[tetris.Kind]int{}
	for i, k := range kinds {
		if prev, ok := last[k]; ok {
			assert.LessOrEqual(t, i-prev, 13)
		}
		last[k] = i
	}
}

func TestSupplyIsDeterministic(t *testing.T) {
	a, _ := drain(tetris.NewSupply(99), 50)
	b, _ := drain(tetris.NewSupply(99), 50)
	assert.Equal(t, a, b)

	c, _ := drain(tetris.NewSupply(100), 50)
	assert.NotEqual(t, a, c)
}

func TestSupplyCopiesAreIndependent(t *testing.T) {
	_, s := drain(tetris.NewSupply(5), 3)
	copied := s

	fromOriginal, _ := drain(s, 20)
	fromCopy, _ := drain(copied, 20)
	assert.Equal(t, fromOriginal, fromCopy)
}

func TestSupplyEnsure(t *testing.T) {
	s := tetris.NewSupply(1)
	assert.Equal(t, 0, s.Len())

	s = s.Ensure(7)
	assert.Equal(t, 7, s.Len())

	same := s.Ensure(3)
	assert.Equal(t, s.Peek(7), same.Peek(7))

	s = s.Ensure(10)
	assert.Equal(t, 14, s.Len())
}

func TestSupplyNextKeepsLookahead(t *testing.T) {
	s := tetris.NewSupply(3)
	for range 40 {
		_, s = s.Next()
		require.GreaterOrEqual(t, s.Len(), tetris.Lookahead-1)
	}
}

func TestSupplyPeek(t *testing.T) {
	s := tetris.NewSupply(11).Ensure(7)

	peeked := s.Peek(3)
	require.Len(t, peeked, 3)

	kinds, _ := drain(s, 3)
	assert.Equal(t, peeked, kinds)
	assert.Len(t, s.Peek(100), 7)
}
