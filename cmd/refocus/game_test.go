package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/refocus/internal/config"
	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGame(t *testing.T) (*Game, *fakeClock) {
	t.Helper()

	cfg := config.Defaults()
	cfg.Engine.Seed = 7
	cfg.Session.ReactivationSec = 20

	flow, err := protocol.NewFlow(cfg.ProtocolSettings(),
		protocol.WithIDGenerator(func() string { return "session-1" }))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 5, 2, 21, 0, 0, 0, time.UTC)}
	g := newGame(cfg, flow, log.New(io.Discard), clock.Now)
	require.NoError(t, g.start())
	return g, clock
}

func step(t *testing.T, g *Game, kb keyboard) {
	t.Helper()
	require.NoError(t, g.update(kb))
}

func TestGameFullSession(t *testing.T) {
	g, clock := newTestGame(t)
	assert.Equal(t, protocol.StatusIntro, g.flow.Status())

	step(t, g, press(ebiten.KeyEnter))
	assert.Equal(t, protocol.StatusReactivation, g.flow.Status())
	assert.Equal(t, 20*time.Second, g.reactivationLeft())

	clock.Advance(19 * time.Second)
	step(t, g, press())
	assert.Equal(t, protocol.StatusReactivation, g.flow.Status())

	clock.Advance(time.Second)
	step(t, g, press())
	require.Equal(t, protocol.StatusRotationTask, g.flow.Status())
	require.NotNil(t, g.quiz)

	for range protocol.RotationQuestions {
		q, ok := g.quiz.current()
		require.True(t, ok)
		key := quizKeys[0].key
		for _, k := range quizKeys {
			if k.label == correctLabel(t, q) {
				key = k.key
			}
		}
		step(t, g, press(key))
		step(t, g, press(ebiten.KeyEnter))
		step(t, g, press(ebiten.KeyEnter))
	}

	require.Equal(t, protocol.StatusTetrisPlay, g.flow.Status())
	require.NotNil(t, g.round)
	assert.Equal(t, time.Duration(protocol.DefaultTetrisTargetMin)*time.Minute, g.round.Config().Target)
	assert.Equal(t, uint64(7), g.round.Config().Engine.Seed)

	step(t, g, press(ebiten.KeySpace))
	assert.Equal(t, 1, g.round.State().Stats().PiecesLocked)

	clock.Advance(90 * time.Second)
	step(t, g, press(ebiten.KeyEnter))
	require.Equal(t, protocol.StatusCheckout, g.flow.Status())
	require.NotNil(t, g.checkout)

	step(t, g, press(ebiten.KeyArrowRight))
	step(t, g, press(ebiten.KeyArrowDown))
	step(t, g, press(ebiten.KeyArrowLeft))
	step(t, g, press(ebiten.KeyEnter))

	require.Equal(t, protocol.StatusCompleted, g.flow.Status())
	require.NotNil(t, g.lastRecord)
	rec := *g.lastRecord
	assert.Equal(t, "session-1", rec.ID)
	assert.Equal(t, 6, rec.Mood)
	assert.Equal(t, 4, rec.Vividness)
	require.NotNil(t, rec.FlashbackCount)
	assert.Zero(t, *rec.FlashbackCount)
	assert.Equal(t, protocol.RotationQuestions, rec.Rotation.CorrectCount)
	assert.Equal(t, 90, rec.Tetris.DurationSec)
	assert.Equal(t, 1, rec.Tetris.PiecesLocked)
	assert.Nil(t, g.round)
	assert.Len(t, g.flow.Records(), 1)

	assert.ErrorIs(t, g.update(press(ebiten.KeyQ)), ebiten.Termination)
}

func TestGameRoundTimerEndsRound(t *testing.T) {
	g, clock := newTestGame(t)
	step(t, g, press(ebiten.KeyEnter))
	clock.Advance(20 * time.Second)
	step(t, g, press())
	for range protocol.RotationQuestions {
		step(t, g, press(ebiten.KeyA))
		step(t, g, press(ebiten.KeyEnter))
		step(t, g, press(ebiten.KeyEnter))
	}
	require.Equal(t, protocol.StatusTetrisPlay, g.flow.Status())
	round := g.round

	clock.Advance(g.round.Config().Target)
	step(t, g, press())

	out, done := round.Outcome()
	require.True(t, done)
	assert.Equal(t, session.FinishTimer, out.Reason)
	assert.Equal(t, protocol.StatusCheckout, g.flow.Status())
}

func TestGameEscapeCancels(t *testing.T) {
	g, _ := newTestGame(t)
	step(t, g, press(ebiten.KeyEnter))
	require.Equal(t, protocol.StatusReactivation, g.flow.Status())

	step(t, g, press(ebiten.KeyEscape))
	assert.Equal(t, protocol.StatusCancelled, g.flow.Status())
	assert.Equal(t, protocol.CancelUser, g.flow.LastCancel())
	assert.Empty(t, g.flow.Records())

	step(t, g, press(ebiten.KeyEnter))
	assert.Equal(t, protocol.StatusIntro, g.flow.Status(), "enter starts a new session")
}

func TestWindowSize(t *testing.T) {
	w, h := windowSize(20, 10, 40)
	assert.Equal(t, boardOffset*2+10*40+sidebarWidth, w)
	assert.Equal(t, boardOffset*2+20*40, h)

	w, h = windowSize(4, 4, 10)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}
