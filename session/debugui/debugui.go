// Package debugui draws Dear ImGui panels over a running puzzle round.
// Panels are plain render functions collected by an Overlay; the host calls
// Overlay.Render once per frame between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Item holds one Dear ImGui render function.
type Item struct {
	Name   string
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Hosts should skip their own key handling while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders a fixed list of panels and can be toggled off.
type Overlay struct {
	items   []Item
	visible bool
	input   InputState
}

func NewOverlay(items ...Item) *Overlay {
	return &Overlay{items: items, visible: true}
}

// Add appends a panel.
func (o *Overlay) Add(item Item) {
	o.items = append(o.items, item)
}

// Items returns the registered panel names in order.
func (o *Overlay) Items() []string {
	names := make([]string, len(o.items))
	for i, item := range o.items {
		names[i] = item.Name
	}
	return names
}

func (o *Overlay) Visible() bool { return o.visible }

// Toggle shows or hides every panel.
func (o *Overlay) Toggle() { o.visible = !o.visible }

// Input returns the capture state sampled by the last Render.
func (o *Overlay) Input() InputState { return o.input }

// Render samples ImGui's input capture state and draws every panel when the
// overlay is visible.
func (o *Overlay) Render() InputState {
	io := imgui.CurrentIO()
	o.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}

	if !o.visible {
		return o.input
	}
	for _, item := range o.items {
		item.Render()
	}
	return o.input
}
