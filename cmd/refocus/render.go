package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/quiz"
	"github.com/plus3/refocus/tetris"
)

const (
	boardOffset  = 40
	sidebarWidth = 220
	lineHeight   = 18
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	gridColor       = color.RGBA{40, 40, 52, 255}
	borderColor     = color.RGBA{130, 130, 130, 255}
	ghostColor      = color.RGBA{255, 255, 255, 60}
	shapeColor      = color.RGBA{200, 200, 210, 255}
	selectedColor   = color.RGBA{255, 203, 0, 255}
)

// kindColors is indexed by tetris.Kind.
var kindColors = [len(tetris.Kinds)]color.RGBA{
	tetris.KindI: {102, 191, 255, 255},
	tetris.KindO: {255, 203, 0, 255},
	tetris.KindT: {135, 60, 190, 255},
	tetris.KindS: {0, 158, 47, 255},
	tetris.KindZ: {255, 109, 194, 255},
	tetris.KindJ: {0, 121, 241, 255},
	tetris.KindL: {255, 161, 0, 255},
}

// windowSize fits the board plus the sidebar at the configured cell size.
func windowSize(rows, cols, cell int) (int, int) {
	w := boardOffset*2 + cols*cell + sidebarWidth
	h := max(boardOffset*2+rows*cell, 480)
	return max(w, 640), h
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	switch g.flow.Status() {
	case protocol.StatusIdle:
		g.drawLines(screen, "Press Enter to begin a session, Q to quit.")
	case protocol.StatusIntro:
		g.drawIntro(screen)
	case protocol.StatusReactivation:
		g.drawReactivation(screen)
	case protocol.StatusRotationTask:
		g.drawQuiz(screen)
	case protocol.StatusTetrisPlay:
		g.drawRound(screen)
	case protocol.StatusCheckout:
		g.drawCheckout(screen)
	case protocol.StatusCompleted:
		g.drawCompleted(screen)
	case protocol.StatusCancelled:
		g.drawLines(screen,
			fmt.Sprintf("Session cancelled (%s).", g.flow.LastCancel()),
			"",
			"Press Enter to start again, Q to quit.")
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) drawLines(screen *ebiten.Image, lines ...string) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, boardOffset, boardOffset+i*lineHeight)
	}
}

func (g *Game) drawIntro(screen *ebiten.Image) {
	draft, _ := g.flow.Draft()
	lines := []string{
		"Before you start",
		"",
		fmt.Sprintf("1. Bring the memory to mind for %d seconds.", draft.ReactivationSec),
		fmt.Sprintf("2. Answer %d mental rotation questions.", draft.RotationQuestions),
		fmt.Sprintf("3. Play the puzzle for %s.", draft.TetrisTarget()),
		"4. Rate how you feel.",
		"",
		"Stop at any time with Esc.",
	}
	if note := g.flow.Settings().EmergencyNote; note != "" {
		lines = append(lines, "", "If you feel overwhelmed: "+note)
	}
	lines = append(lines, "", "Press Enter to continue.")
	g.drawLines(screen, lines...)
}

func (g *Game) drawReactivation(screen *ebiten.Image) {
	left := g.reactivationLeft().Round(time.Second)
	g.drawLines(screen,
		"Briefly bring the memory to mind.",
		"Do not dwell on details.",
		"",
		fmt.Sprintf("%s remaining", left))
}

func (g *Game) drawQuiz(screen *ebiten.Image) {
	q, ok := g.quiz.current()
	if !ok {
		return
	}

	g.drawLines(screen,
		fmt.Sprintf("%s (%d/%d)", q.Title, g.quiz.index+1, len(g.quiz.questions)),
		q.Prompt)

	const cell = 14
	top := boardOffset + 3*lineHeight
	drawShape(screen, q.Base, boardOffset, top+lineHeight, cell, shapeColor)
	ebitenutil.DebugPrintAt(screen, "Base", boardOffset, top)

	for i, opt := range q.Options {
		x := boardOffset + (i+1)*(cell*5)
		clr := shapeColor
		if opt.ID == g.quiz.selected {
			clr = selectedColor
		}
		ebitenutil.DebugPrintAt(screen, opt.Label, x, top)
		drawShape(screen, opt.Matrix, x, top+lineHeight, cell, clr)
	}

	status := "Choose A-D, then press Enter."
	if g.quiz.revealed {
		verdict := "Not quite."
		if g.quiz.lastCorrect() {
			verdict = "Correct."
		}
		status = verdict + " " + q.Explanation + " Press Enter."
	}
	ebitenutil.DebugPrintAt(screen, status, boardOffset, top+lineHeight+5*cell)
}

func drawShape(screen *ebiten.Image, m quiz.Matrix, x, y, cell int, clr color.Color) {
	for r, row := range m {
		for c, filled := range row {
			if !filled {
				continue
			}
			px := float32(x + c*cell)
			py := float32(y + r*cell)
			vector.DrawFilledRect(screen, px, py, float32(cell-1), float32(cell-1), clr, false)
		}
	}
}

func (g *Game) drawRound(screen *ebiten.Image) {
	if g.round == nil {
		return
	}

	state := g.round.State()
	board := state.Board()
	cell := float32(g.cfg.UI.CellSize)
	ox, oy := float32(boardOffset), float32(boardOffset)

	vector.StrokeRect(screen, ox-2, oy-2, float32(board.Cols())*cell+4, float32(board.Rows())*cell+4, 1, borderColor, false)

	for r := range board.Rows() {
		for c := range board.Cols() {
			x := ox + float32(c)*cell
			y := oy + float32(r)*cell
			kind, ok := board.At(r, c).Kind()
			if !ok {
				vector.StrokeRect(screen, x, y, cell, cell, 1, gridColor, false)
				continue
			}
			vector.DrawFilledRect(screen, x, y, cell-1, cell-1, kindColors[kind], false)
		}
	}

	active := state.Active()
	ghostY := state.GhostY()
	for col, row := range active.Cells() {
		gy := row - active.Y + ghostY
		if gy >= 0 {
			vector.DrawFilledRect(screen, ox+float32(col)*cell, oy+float32(gy)*cell, cell-1, cell-1, ghostColor, false)
		}
	}
	for col, row := range active.Cells() {
		if row >= 0 {
			vector.DrawFilledRect(screen, ox+float32(col)*cell, oy+float32(row)*cell, cell-1, cell-1, kindColors[active.Kind], false)
		}
	}

	g.drawSidebar(screen, state, int(ox+float32(board.Cols())*cell)+20)
}

func (g *Game) drawSidebar(screen *ebiten.Image, state *tetris.State, x int) {
	stats := state.Stats()

	hold := "-"
	if k, ok := state.HoldKind(); ok {
		hold = k.String()
	}
	next := make([]string, 0, 5)
	for _, k := range state.Next(5) {
		next = append(next, k.String())
	}

	lines := []string{
		fmt.Sprintf("TIME LEFT  %s", g.round.Remaining().Round(time.Second)),
		"",
		fmt.Sprintf("NEXT  %s", strings.Join(next, " ")),
		fmt.Sprintf("HOLD  %s", hold),
		"",
		fmt.Sprintf("LINES      %d", stats.LinesCleared),
		fmt.Sprintf("ROTATIONS  %d", stats.RotationsUsed),
		fmt.Sprintf("FITS       %d", stats.FitsAfterRotation),
		fmt.Sprintf("PIECES     %d", stats.PiecesLocked),
		"",
		"<- -> move   v soft drop",
		"Space drop   Z/X rotate",
		"C hold       Enter finish",
	}
	if state.GameOver() {
		lines = append(lines, "", "GAME OVER")
	}

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, boardOffset+i*lineHeight)
	}
}

func (g *Game) drawCheckout(screen *ebiten.Image) {
	lines := []string{"How are you now?", ""}
	for f := range fieldCount {
		marker := "  "
		if f == g.checkout.field {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-30s %2d", marker, f, g.checkout.values[f]))
	}
	lines = append(lines, "", "Up/Down choose, Left/Right adjust, Enter save.")
	g.drawLines(screen, lines...)
}

func (g *Game) drawCompleted(screen *ebiten.Image) {
	if g.lastRecord == nil {
		g.drawLines(screen, "Session complete.", "", "Press Enter to start again, Q to quit.")
		return
	}

	rec := g.lastRecord
	g.drawLines(screen,
		"Session complete. Thank you.",
		"",
		fmt.Sprintf("Rotation quiz   %d/%d correct", rec.Rotation.CorrectCount, rec.RotationQuestions),
		fmt.Sprintf("Played          %s", time.Duration(rec.Tetris.DurationSec)*time.Second),
		fmt.Sprintf("Lines cleared   %d", rec.Tetris.LinesCleared),
		fmt.Sprintf("Pieces locked   %d", rec.Tetris.PiecesLocked),
		fmt.Sprintf("Mood            %d/10", rec.Mood),
		fmt.Sprintf("Vividness       %d/10", rec.Vividness),
		"",
		"Press Enter to start again, Q to quit.")
}
