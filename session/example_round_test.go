package session_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

// ExampleRound shows a frame-driven round: queue input, advance with the
// frame delta and stop when the player is done.
func ExampleRound() {
	round := session.NewRound(session.RoundConfig{
		Engine: tetris.Config{Seed: 1},
		Target: 5 * time.Minute,
	})

	round.Queue(session.RotateCW)
	round.Queue(session.HardDrop)
	round.Once(1.0 / 60)

	round.Stop()

	out, _ := round.Outcome()
	fmt.Println(out.Reason)
	fmt.Printf("locked=%d fits=%d\n", out.Result.PiecesLocked, out.Result.FitsAfterRotation)

	// Output:
	// manual
	// locked=1 fits=1
}

// ExampleRound_Run shows a blocking round fed from a channel. Run returns
// once the round ends or the context is cancelled.
func ExampleRound_Run() {
	round := session.NewRound(session.RoundConfig{
		Engine: tetris.Config{Rows: 4, Cols: 4},
	})

	input := make(chan session.Command, 32)
	for range cap(input) {
		input <- session.HardDrop
	}
	close(input)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := round.Run(ctx, 10*time.Millisecond, input)
	fmt.Println(out.Reason, err)

	// Output:
	// gameover <nil>
}
