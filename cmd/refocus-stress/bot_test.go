package main

import (
	"testing"

	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardFeatures(t *testing.T) {
	b, err := tetris.BoardFromRows(
		"....",
		".T..",
		"TT.O",
		"I..O",
	)
	require.NoError(t, err)

	height, holes, bumpiness := boardFeatures(b)
	// Column heights are 2, 3, 0, 2.
	assert.Equal(t, 7, height)
	assert.Equal(t, 1, holes)
	assert.Equal(t, 1+3+2, bumpiness)
}

func TestPlacement(t *testing.T) {
	assert.Equal(t, []session.Command{session.HardDrop}, placement(0, 0, 0))
	assert.Equal(t,
		[]session.Command{session.RotateCW, session.RotateCW, session.MoveLeft, session.HardDrop},
		placement(2, -1, 1))
}

func TestBestPlanOnEmptyBoard(t *testing.T) {
	for seed := range uint64(10) {
		s := tetris.New(tetris.Config{Seed: seed + 1})
		kind := s.Active().Kind
		p := bestPlan(s)
		require.NotEmpty(t, p.commands)
		assert.Equal(t, session.HardDrop, p.commands[len(p.commands)-1])

		for _, cmd := range p.commands {
			s = session.Apply(s, cmd)
		}
		_, holes, _ := boardFeatures(s.Board())
		// S and Z cannot lie flat on an empty floor.
		if kind == tetris.KindS || kind == tetris.KindZ {
			assert.LessOrEqual(t, holes, 1, "seed %d", seed+1)
		} else {
			assert.Zero(t, holes, "seed %d kind %s", seed+1, kind)
		}
		assert.Equal(t, 1, s.Stats().PiecesLocked)
	}
}
