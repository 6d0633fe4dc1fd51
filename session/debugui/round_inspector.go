package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

// Field is one labelled value shown by the inspector.
type Field struct {
	Name  string
	Value string
}

// StateFields describes a snapshot as label/value pairs.
func StateFields(s *tetris.State) []Field {
	active := s.Active()
	stats := s.Stats()

	hold := "-"
	if k, ok := s.HoldKind(); ok {
		hold = k.String()
	}

	next := make([]string, 0, tetris.Lookahead)
	for _, k := range s.Next(tetris.Lookahead) {
		next = append(next, k.String())
	}

	return []Field{
		{"Active", fmt.Sprintf("%s at (%d,%d)", active.Kind, active.X, active.Y)},
		{"Ghost row", fmt.Sprintf("%d", s.GhostY())},
		{"Hold", hold},
		{"Can hold", fmt.Sprintf("%t", s.CanHold())},
		{"Rotated", fmt.Sprintf("%t", s.DidRotateCurrent())},
		{"Next", strings.Join(next, " ")},
		{"Lines", fmt.Sprintf("%d", stats.LinesCleared)},
		{"Rotations", fmt.Sprintf("%d", stats.RotationsUsed)},
		{"Locked", fmt.Sprintf("%d", stats.PiecesLocked)},
		{"Fits after rotation", fmt.Sprintf("%d", stats.FitsAfterRotation)},
		{"Game over", fmt.Sprintf("%t", s.GameOver())},
	}
}

// RoundInspector shows the live snapshot of a round and offers a few
// controls for poking at it.
type RoundInspector struct {
	round     func() *session.Round
	showBoard bool
}

func NewRoundInspector(round func() *session.Round) *RoundInspector {
	return &RoundInspector{round: round, showBoard: true}
}

func (ri *RoundInspector) Item() Item {
	return Item{Name: "Round Inspector", Render: ri.Render}
}

func (ri *RoundInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 310), imgui.CondOnce)

	if !imgui.BeginV("Round Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	round := ri.round()
	if round == nil {
		imgui.Text("No round running")
		imgui.End()
		return
	}

	cfg := round.Config()
	imgui.Text(fmt.Sprintf("Board: %dx%d  Seed: %d", cfg.Engine.Rows, cfg.Engine.Cols, cfg.Engine.Seed))

	if out, done := round.Outcome(); done {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), fmt.Sprintf("FINISHED (%s)", out.Reason))
	} else {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	elapsed := round.Elapsed()
	progress := float32(0)
	if cfg.Target > 0 {
		progress = float32(min(1, elapsed.Seconds()/cfg.Target.Seconds()))
	}
	imgui.ProgressBarV(progress, imgui.NewVec2(-1, 0),
		fmt.Sprintf("%s / %s", elapsed.Round(time.Second), cfg.Target))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("StateTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Field")
		imgui.TableSetupColumn("Value")
		imgui.TableHeadersRow()

		for _, f := range StateFields(round.State()) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(f.Name)
			imgui.TableNextColumn()
			imgui.Text(f.Value)
		}
		imgui.EndTable()
	}

	imgui.Checkbox("Show board", &ri.showBoard)
	if ri.showBoard && imgui.TreeNodeStr("Board") {
		imgui.Text(round.State().Board().String())
		imgui.TreePop()
	}

	if !round.Done() {
		imgui.Separator()
		if imgui.Button("Hard drop") {
			round.Queue(session.HardDrop)
		}
		imgui.SameLine()
		if imgui.Button("Hold") {
			round.Queue(session.Hold)
		}
		imgui.SameLine()
		if imgui.Button("Finish round") {
			round.Stop()
		}
	}

	imgui.End()
}
