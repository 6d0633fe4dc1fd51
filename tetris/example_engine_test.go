package tetris_test

import (
	"fmt"
	"time"

	"github.com/plus3/refocus/tetris"
)

// ExampleState shows the driver side of the engine: keep one current
// snapshot, replace it after every transition and read stats from it.
func ExampleState() {
	state := tetris.New(tetris.Config{Seed: 1})

	state = state.MoveHorizontal(-1)
	state = state.Rotate(tetris.CW)
	state = state.HardDrop()

	stats := state.Stats()
	fmt.Printf("locked=%d rotations=%d fits=%d lines=%d\n",
		stats.PiecesLocked, stats.RotationsUsed, stats.FitsAfterRotation, stats.LinesCleared)

	res := state.Result(95*time.Second, 20*time.Minute)
	fmt.Printf("duration=%ds\n", res.DurationSec)

	// Output:
	// locked=1 rotations=1 fits=1 lines=0
	// duration=95s
}

// ExampleState_rejected shows that a rejected move hands back the same
// snapshot, so drivers can detect it with a pointer comparison.
func ExampleState_rejected() {
	state := tetris.New(tetris.Config{})
	for range 10 {
		state = state.MoveHorizontal(1)
	}

	next := state.MoveHorizontal(1)
	fmt.Println(next == state)

	// Output:
	// true
}

// ExampleBoard_ClearFullRows demonstrates row compaction on a small board.
func ExampleBoard_ClearFullRows() {
	board, _ := tetris.BoardFromRows(
		"..T.",
		"IIII",
		"O..O",
	)

	cleared, n := board.ClearFullRows()
	fmt.Println(n)
	fmt.Println(cleared)

	// Output:
	// 1
	// ....
	// ..T.
	// O..O
}
