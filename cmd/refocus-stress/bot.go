package main

import (
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

// Board evaluation weights.
const (
	heightWeight    = -0.51
	linesWeight     = 0.76
	holesWeight     = -0.36
	bumpinessWeight = -0.18
	gameOverScore   = -1e9
)

// plan is the command sequence that places the active piece.
type plan struct {
	commands []session.Command
	score    float64
}

// bestPlan tries every reachable rotation and column for the active piece,
// hard drops it and keeps the placement with the best board score.
func bestPlan(s *tetris.State) plan {
	best := plan{commands: []session.Command{session.HardDrop}, score: gameOverScore * 2}

	rotated := s
	for rot := range 4 {
		if rot > 0 {
			next := rotated.Rotate(tetris.CW)
			if next == rotated {
				break
			}
			rotated = next
		}

		for _, dir := range []int{0, -1, 1} {
			moved := rotated
			for steps := 0; ; steps++ {
				if steps > 0 {
					next := moved.MoveHorizontal(dir)
					if next == moved {
						break
					}
					moved = next
				}

				score := evaluate(s, moved.HardDrop())
				if score > best.score {
					best = plan{commands: placement(rot, dir, steps), score: score}
				}
				if dir == 0 {
					break
				}
			}
		}
	}

	return best
}

func placement(rot, dir, steps int) []session.Command {
	out := make([]session.Command, 0, rot+steps+1)
	for range rot {
		out = append(out, session.RotateCW)
	}
	move := session.MoveRight
	if dir < 0 {
		move = session.MoveLeft
	}
	for range steps {
		out = append(out, move)
	}
	return append(out, session.HardDrop)
}

// evaluate scores the board after a drop relative to the snapshot before it.
func evaluate(before, after *tetris.State) float64 {
	if after.GameOver() {
		return gameOverScore
	}

	lines := after.Stats().LinesCleared - before.Stats().LinesCleared
	height, holes, bumpiness := boardFeatures(after.Board())

	return heightWeight*float64(height) +
		linesWeight*float64(lines) +
		holesWeight*float64(holes) +
		bumpinessWeight*float64(bumpiness)
}

// boardFeatures returns the aggregate column height, the number of empty
// cells below a filled one and the summed height difference of neighbouring
// columns.
func boardFeatures(b tetris.Board) (height, holes, bumpiness int) {
	prev := -1
	for c := range b.Cols() {
		colHeight := 0
		for r := range b.Rows() {
			_, filled := b.At(r, c).Kind()
			switch {
			case filled && colHeight == 0:
				colHeight = b.Rows() - r
			case !filled && colHeight > 0:
				holes++
			}
		}

		height += colHeight
		if prev >= 0 {
			bumpiness += abs(colHeight - prev)
		}
		prev = colHeight
	}
	return height, holes, bumpiness
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
