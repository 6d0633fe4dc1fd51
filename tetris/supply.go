package tetris

import (
	"math/rand/v2"
	"slices"
)

// Lookahead is the minimum number of buffered kinds kept before a draw.
const Lookahead = 7

// pcgStream decorrelates the second PCG word from the seed.
const pcgStream = 0x9e3779b97f4a7c15

// Supply is an endless 7-bag piece sequence. It is a value: the random
// generator state travels with the buffered queue, so two copies of a supply
// produce identical, independent sequences.
type Supply struct {
	src   rand.PCG
	queue []Kind
}

// NewSupply returns an empty supply seeded with seed.
func NewSupply(seed uint64) Supply {
	return Supply{src: *rand.NewPCG(seed, seed^pcgStream)}
}

// Len returns the number of buffered kinds.
func (s Supply) Len() int {
	return len(s.queue)
}

// Ensure appends freshly shuffled bags until at least minLen kinds are buffered.
func (s Supply) Ensure(minLen int) Supply {
	if len(s.queue) >= minLen {
		return s
	}

	next := Supply{src: s.src, queue: slices.Clone(s.queue)}
	rng := rand.New(&next.src)
	for len(next.queue) < minLen {
		next.queue = append(next.queue, shuffledBag(rng)...)
	}
	return next
}

// Next tops the buffer up to Lookahead and removes its head.
func (s Supply) Next() (Kind, Supply) {
	next := s.Ensure(Lookahead)
	kind := next.queue[0]
	next.queue = next.queue[1:]
	return kind, next
}

// Peek returns up to n upcoming kinds without consuming them.
func (s Supply) Peek(n int) []Kind {
	n = min(n, len(s.queue))
	return slices.Clone(s.queue[:n])
}

// shuffledBag returns a uniform Fisher-Yates permutation of all seven kinds.
func shuffledBag(rng *rand.Rand) []Kind {
	bag := Kinds
	for i := len(bag) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag[:]
}
