package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/refocus/internal/config"
	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/quiz"
	"github.com/plus3/refocus/session"
	debugui_ebiten "github.com/plus3/refocus/session/debugui/ebiten"
)

// frameDelta is the simulated time of one ebiten update at the default TPS.
const frameDelta = 1.0 / 60.0

var quizKeys = []struct {
	key   ebiten.Key
	label string
}{
	{ebiten.KeyA, "A"},
	{ebiten.KeyB, "B"},
	{ebiten.KeyC, "C"},
	{ebiten.KeyD, "D"},
}

// Game implements ebiten.Game and drives one protocol.Flow: every update
// reads input for the current step and advances the flow.
type Game struct {
	cfg    config.Config
	flow   *protocol.Flow
	logger *log.Logger
	now    func() time.Time

	controls *controls
	round    *session.Round
	quiz     *quizStep
	checkout *checkoutForm

	reactivationEnds time.Time
	lastRecord       *protocol.Record

	imgui *debugui_ebiten.ImguiBackend
}

func newGame(cfg config.Config, flow *protocol.Flow, logger *log.Logger, now func() time.Time) *Game {
	return &Game{
		cfg:      cfg,
		flow:     flow,
		logger:   logger,
		now:      now,
		controls: newControls(),
	}
}

// currentRound is handed to the debug panels.
func (g *Game) currentRound() *session.Round { return g.round }

func (g *Game) Update() error {
	var kb keyboard = ebitenKeyboard{}

	if g.imgui != nil {
		if kb.JustPressed(ebiten.KeyF1) {
			g.imgui.Overlay.Toggle()
		}
		if g.imgui.Frame().WantCaptureKeyboard {
			kb = blockedKeyboard{}
		}
	}

	return g.update(kb)
}

func (g *Game) update(kb keyboard) error {
	status := g.flow.Status()

	if status.InProgress() && kb.JustPressed(ebiten.KeyEscape) {
		return g.cancel(protocol.CancelUser)
	}

	switch status {
	case protocol.StatusIdle, protocol.StatusCompleted, protocol.StatusCancelled:
		return g.updateFinished(kb)
	case protocol.StatusIntro:
		return g.updateIntro(kb)
	case protocol.StatusReactivation:
		return g.updateReactivation()
	case protocol.StatusRotationTask:
		return g.updateQuiz(kb)
	case protocol.StatusTetrisPlay:
		return g.updateRound(kb)
	case protocol.StatusCheckout:
		return g.updateCheckout(kb)
	}
	return nil
}

func (g *Game) cancel(reason protocol.CancelReason) error {
	if err := g.flow.Cancel(reason); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}
	g.round = nil
	g.quiz = nil
	g.checkout = nil
	return nil
}

func (g *Game) start() error {
	if err := g.flow.Start(g.now()); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.lastRecord = nil
	return nil
}

func (g *Game) updateFinished(kb keyboard) error {
	switch {
	case kb.JustPressed(ebiten.KeyEnter):
		return g.start()
	case kb.JustPressed(ebiten.KeyQ), kb.JustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateIntro(kb keyboard) error {
	if !kb.JustPressed(ebiten.KeyEnter) {
		return nil
	}
	if err := g.flow.AcceptTerms(); err != nil {
		return fmt.Errorf("accept terms: %w", err)
	}

	draft, _ := g.flow.Draft()
	g.reactivationEnds = g.now().Add(draft.Reactivation())
	return nil
}

func (g *Game) reactivationLeft() time.Duration {
	return max(0, g.reactivationEnds.Sub(g.now()))
}

func (g *Game) updateReactivation() error {
	if g.reactivationLeft() > 0 {
		return nil
	}
	if err := g.flow.FinishReactivation(); err != nil {
		return fmt.Errorf("finish reactivation: %w", err)
	}

	draft, _ := g.flow.Draft()
	g.quiz = newQuizStep(draft.Questions)
	return nil
}

func (g *Game) updateQuiz(kb keyboard) error {
	for _, k := range quizKeys {
		if kb.JustPressed(k.key) {
			g.quiz.choose(k.label)
		}
	}

	if !kb.JustPressed(ebiten.KeyEnter) {
		return nil
	}
	if !g.quiz.revealed {
		g.quiz.submit(g.now())
		return nil
	}
	if !g.quiz.next() {
		return nil
	}

	answers := g.quiz.answers
	if err := g.flow.SetRotationResult(answers, quiz.Score(answers)); err != nil {
		return fmt.Errorf("set rotation result: %w", err)
	}
	g.quiz = nil
	g.startRound()
	return nil
}

func (g *Game) startRound() {
	draft, _ := g.flow.Draft()

	rc := g.cfg.RoundConfig()
	rc.Target = draft.TetrisTarget()
	if rc.Engine.Seed == 0 {
		rc.Engine.Seed = rand.Uint64()
	}

	g.round = session.NewRound(rc, session.WithLogger(g.logger), session.WithClock(g.now))
}

func (g *Game) updateRound(kb keyboard) error {
	if kb.JustPressed(ebiten.KeyEnter) {
		g.round.Stop()
	} else {
		for _, cmd := range g.controls.poll(kb, frameDelta) {
			g.round.Queue(cmd)
		}
		g.round.Once(frameDelta)
	}

	out, done := g.round.Outcome()
	if !done {
		return nil
	}
	if err := g.flow.SetTetrisStats(protocol.StatsFromOutcome(out)); err != nil {
		return fmt.Errorf("set tetris stats: %w", err)
	}
	g.checkout = newCheckoutForm()
	return nil
}

func (g *Game) updateCheckout(kb keyboard) error {
	switch {
	case kb.JustPressed(ebiten.KeyArrowUp):
		g.checkout.move(-1)
	case kb.JustPressed(ebiten.KeyArrowDown):
		g.checkout.move(1)
	case kb.JustPressed(ebiten.KeyArrowLeft):
		g.checkout.adjust(-1)
	case kb.JustPressed(ebiten.KeyArrowRight):
		g.checkout.adjust(1)
	case kb.JustPressed(ebiten.KeyEnter):
		rec, err := g.flow.SaveCheck(g.checkout.input())
		if err != nil {
			return fmt.Errorf("save check: %w", err)
		}
		g.lastRecord = &rec
		g.checkout = nil
		g.round = nil
		g.logRecord(rec)
	}
	return nil
}

func (g *Game) logRecord(rec protocol.Record) {
	body, err := json.Marshal(rec)
	if err != nil {
		g.logger.Error("encode session record", "err", err)
		return
	}
	g.logger.Info("session record", "id", rec.ID, "record", string(body))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
