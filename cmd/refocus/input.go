package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/refocus/session"
)

// keyboard is the slice of ebiten's input API the game reads.
type keyboard interface {
	JustPressed(key ebiten.Key) bool
	Pressed(key ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeyboard) Pressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }

// blockedKeyboard reports nothing; used while the debug overlay owns the
// keyboard.
type blockedKeyboard struct{}

func (blockedKeyboard) JustPressed(ebiten.Key) bool { return false }
func (blockedKeyboard) Pressed(ebiten.Key) bool     { return false }

// repeater turns a held key into repeated presses: one on the initial press,
// then one every rate seconds once delay has passed.
type repeater struct {
	delay float64
	rate  float64
	held  float64
}

func (r *repeater) update(justPressed, pressed bool, dt float64) bool {
	switch {
	case justPressed:
		r.held = 0
		return true
	case pressed:
		r.held += dt
		if r.held > r.delay {
			r.held -= r.rate
			return true
		}
		return false
	default:
		r.held = 0
		return false
	}
}

type binding struct {
	keys   []ebiten.Key
	cmd    session.Command
	repeat *repeater
}

// controls maps round keys to commands:
// ←/→ move, ↓ soft drop, Space hard drop, Z counter-clockwise,
// X or ↑ clockwise, C hold.
type controls struct {
	bindings []binding
}

func newControls() *controls {
	return &controls{bindings: []binding{
		{keys: []ebiten.Key{ebiten.KeyArrowLeft}, cmd: session.MoveLeft, repeat: &repeater{delay: 0.17, rate: 0.05}},
		{keys: []ebiten.Key{ebiten.KeyArrowRight}, cmd: session.MoveRight, repeat: &repeater{delay: 0.17, rate: 0.05}},
		{keys: []ebiten.Key{ebiten.KeyArrowDown}, cmd: session.SoftDrop, repeat: &repeater{delay: 0.05, rate: 0.05}},
		{keys: []ebiten.Key{ebiten.KeySpace}, cmd: session.HardDrop},
		{keys: []ebiten.Key{ebiten.KeyZ}, cmd: session.RotateCCW},
		{keys: []ebiten.Key{ebiten.KeyX, ebiten.KeyArrowUp}, cmd: session.RotateCW},
		{keys: []ebiten.Key{ebiten.KeyC}, cmd: session.Hold},
	}}
}

// poll returns the commands triggered this frame, in binding order.
func (c *controls) poll(kb keyboard, dt float64) []session.Command {
	var out []session.Command

	for _, b := range c.bindings {
		just, held := false, false
		for _, key := range b.keys {
			just = just || kb.JustPressed(key)
			held = held || kb.Pressed(key)
		}

		if b.repeat != nil {
			if b.repeat.update(just, held, dt) {
				out = append(out, b.cmd)
			}
			continue
		}
		if just {
			out = append(out, b.cmd)
		}
	}

	return out
}
