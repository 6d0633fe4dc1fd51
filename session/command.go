// Package session drives one timed puzzle round on top of the tetris engine:
// it buffers player commands, paces gravity, owns the authoritative snapshot
// and decides how and when the round finishes.
package session

import "github.com/plus3/refocus/tetris"

// Command is one player intent.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Hold

	commandCount
)

// AllCommands lists every command in declaration order.
var AllCommands = [commandCount]Command{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW, Hold}

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case SoftDrop:
		return "SoftDrop"
	case HardDrop:
		return "HardDrop"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	case Hold:
		return "Hold"
	}
	return "Unknown"
}

// Apply maps cmd onto a single engine transition. Unknown commands leave the
// state untouched.
func Apply(state *tetris.State, cmd Command) *tetris.State {
	switch cmd {
	case MoveLeft:
		return state.MoveHorizontal(-1)
	case MoveRight:
		return state.MoveHorizontal(1)
	case SoftDrop:
		return state.StepGravity()
	case HardDrop:
		return state.HardDrop()
	case RotateCW:
		return state.Rotate(tetris.CW)
	case RotateCCW:
		return state.Rotate(tetris.CCW)
	case Hold:
		return state.Hold()
	}
	return state
}
