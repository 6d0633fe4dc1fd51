package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(1, frames))}
}

// Push records one frame duration given in seconds.
func (h *FrameHistory) Push(deltaTime float32) {
	h.samples[h.index] = deltaTime * 1000.0
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ft := range h.samples {
		sum += ft
	}
	return sum / float32(h.filled)
}

// Ordered returns the samples oldest first.
func (h *FrameHistory) Ordered() []float32 {
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.index:]...)
	return append(out, h.samples[:h.index]...)
}

// PerformanceStats is the panel showing frame times and how the round has
// been driven: per-command apply times and the locked-piece distribution.
type PerformanceStats struct {
	history *FrameHistory
	round   func() *session.Round
}

func NewPerformanceStats(historyFrames int, round func() *session.Round) *PerformanceStats {
	return &PerformanceStats{
		history: NewFrameHistory(historyFrames),
		round:   round,
	}
}

// Item wraps the panel for an Overlay; timer supplies the frame delta.
func (ps *PerformanceStats) Item(timer *FrameTimer) Item {
	return Item{
		Name:   "Performance Stats",
		Render: func() { ps.Render(timer.GetDeltaTime()) },
	}
}

func (ps *PerformanceStats) Render(deltaTime float32) {
	ps.history.Push(deltaTime)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 320), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avgFrameTime := ps.history.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.history.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	round := ps.round()
	if round == nil {
		imgui.Text("No round running")
		imgui.End()
		return
	}

	stats := round.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d  Gravity steps: %d", stats.Frames, stats.GravitySteps))
	imgui.Text(fmt.Sprintf("Commands: %d accepted, %d rejected", stats.Accepted, stats.Rejected))

	if imgui.TreeNodeStr("Command Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("CommandStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Command")
			imgui.TableSetupColumn("Count")
			imgui.TableSetupColumn("Rejected")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, cmd := range stats.Commands {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(cmd.Command.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", cmd.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", cmd.Rejected))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(cmd.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(cmd.MaxDuration))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Locked Pieces") {
		counts := stats.KindCounts()
		for i, kind := range tetris.Kinds {
			imgui.BulletText(fmt.Sprintf("%s: %d", kind, counts[i]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
