package session

import (
	"time"

	"github.com/plus3/refocus/tetris"
)

// Applied describes one command after Flush ran it.
type Applied struct {
	Command Command
	Before  *tetris.State
	After   *tetris.State
	Took    time.Duration
}

// Accepted reports whether the engine changed the snapshot.
func (a Applied) Accepted() bool {
	return a.Before != a.After
}

// Commands buffers player input between frames. Input handlers push while the
// frame is being drawn; the round applies the whole buffer at the start of its
// next update so the snapshot only changes in one place.
type Commands struct {
	queue     []Command
	observers []func(Applied)
}

// Push queues a command.
func (c *Commands) Push(cmd Command) {
	c.queue = append(c.queue, cmd)
}

// Len reports how many commands are waiting.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Observe registers fn to be called after every applied command.
func (c *Commands) Observe(fn func(Applied)) {
	c.observers = append(c.observers, fn)
}

// Flush applies the queued commands to state in FIFO order, resetting the
// buffer, and returns the resulting snapshot.
func (c *Commands) Flush(state *tetris.State) *tetris.State {
	for _, cmd := range c.queue {
		start := time.Now()
		next := Apply(state, cmd)
		took := time.Since(start)

		for _, fn := range c.observers {
			fn(Applied{Command: cmd, Before: state, After: next, Took: took})
		}
		state = next
	}

	c.queue = c.queue[:0]
	return state
}
