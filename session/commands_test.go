package session_test

import (
	"testing"

	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  session.Command
		want string
	}{
		{session.MoveLeft, "MoveLeft"},
		{session.MoveRight, "MoveRight"},
		{session.SoftDrop, "SoftDrop"},
		{session.HardDrop, "HardDrop"},
		{session.RotateCW, "RotateCW"},
		{session.RotateCCW, "RotateCCW"},
		{session.Hold, "Hold"},
		{session.Command(200), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestApplyMapsToEngine(t *testing.T) {
	base := tetris.New(tetris.Config{Seed: 12})

	tests := []struct {
		cmd  session.Command
		want *tetris.State
	}{
		{session.MoveLeft, base.MoveHorizontal(-1)},
		{session.MoveRight, base.MoveHorizontal(1)},
		{session.SoftDrop, base.StepGravity()},
		{session.HardDrop, base.HardDrop()},
		{session.RotateCW, base.Rotate(tetris.CW)},
		{session.RotateCCW, base.Rotate(tetris.CCW)},
		{session.Hold, base.Hold()},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			got := session.Apply(base, tt.cmd)
			assert.Equal(t, tt.want.Active(), got.Active())
			assert.Equal(t, tt.want.Stats(), got.Stats())
			assert.Equal(t, tt.want.Board().String(), got.Board().String())
		})
	}
}

func TestApplyUnknownCommand(t *testing.T) {
	base := tetris.New(tetris.Config{})
	assert.Same(t, base, session.Apply(base, session.Command(99)))
}

func TestCommandsFlushInOrder(t *testing.T) {
	var buf session.Commands
	var seen []session.Command
	buf.Observe(func(a session.Applied) {
		seen = append(seen, a.Command)
	})

	buf.Push(session.RotateCW)
	buf.Push(session.MoveLeft)
	buf.Push(session.HardDrop)
	require.Equal(t, 3, buf.Len())

	base := tetris.New(tetris.Config{Seed: 8})
	got := buf.Flush(base)

	want := base.Rotate(tetris.CW).MoveHorizontal(-1).HardDrop()
	assert.Equal(t, want.Board().String(), got.Board().String())
	assert.Equal(t, want.Stats(), got.Stats())
	assert.Equal(t, []session.Command{session.RotateCW, session.MoveLeft, session.HardDrop}, seen)
	assert.Equal(t, 0, buf.Len())
}

func TestCommandsFlushReportsRejections(t *testing.T) {
	var buf session.Commands
	var accepted []bool
	buf.Observe(func(a session.Applied) {
		accepted = append(accepted, a.Accepted())
	})

	base := tetris.New(tetris.Config{})
	buf.Push(session.Hold)
	buf.Push(session.Hold)
	buf.Flush(base)

	assert.Equal(t, []bool{true, false}, accepted)
}

func TestCommandsFlushEmpty(t *testing.T) {
	var buf session.Commands
	base := tetris.New(tetris.Config{})
	assert.Same(t, base, buf.Flush(base))
}
