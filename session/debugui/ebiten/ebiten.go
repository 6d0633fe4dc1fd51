// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/refocus/session/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and the overlay it draws each frame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the Ebiten window and ImGui context. The imgui.ini
// file is disabled so panel layout is not persisted between runs.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend, Overlay: overlay}
}

// Frame runs one ImGui frame around the overlay's panels and returns the
// input capture state sampled inside it.
func (b *ImguiBackend) Frame() debugui.InputState {
	b.BeginFrame()
	defer b.EndFrame()
	return b.Overlay.Render()
}
