package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/refocus/tetris"
)

// DefaultTarget is the planned length of a round.
const DefaultTarget = 20 * time.Minute

// FinishReason says why a round ended.
type FinishReason string

const (
	FinishTimer    FinishReason = "timer"
	FinishManual   FinishReason = "manual"
	FinishGameOver FinishReason = "gameover"
)

// RoundConfig configures one round.
type RoundConfig struct {
	Engine tetris.Config
	// Target is the planned play time; zero means DefaultTarget.
	Target time.Duration
}

// Outcome is the final report of a finished round.
type Outcome struct {
	Reason    FinishReason
	Result    tetris.Result
	StartedAt time.Time
	EndedAt   time.Time
}

// Option customises a Round.
type Option func(*Round)

// WithLogger sets the logger used for round lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(r *Round) {
		r.logger = logger
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Round) {
		r.now = now
	}
}

// Round owns the authoritative engine snapshot for one timed play session.
// It is not safe for concurrent use: either call Queue and Once from a single
// goroutine or hand input to Run.
type Round struct {
	cfg      RoundConfig
	state    *tetris.State
	commands Commands
	stats    *statsRecorder
	logger   *log.Logger
	now      func() time.Time

	gravityAcc float64
	startedAt  time.Time
	outcome    *Outcome
}

// NewRound creates a round with a freshly spawned engine. The clock starts
// immediately.
func NewRound(cfg RoundConfig, opts ...Option) *Round {
	if cfg.Target <= 0 {
		cfg.Target = DefaultTarget
	}

	r := &Round{
		stats:  newStatsRecorder(),
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.state = tetris.New(cfg.Engine)
	cfg.Engine = r.state.Config()
	r.cfg = cfg
	r.startedAt = r.now()

	r.commands.Observe(r.stats.recordApplied)
	r.commands.Observe(r.logRejected)

	r.logger.Info("round started",
		"rows", cfg.Engine.Rows,
		"cols", cfg.Engine.Cols,
		"seed", cfg.Engine.Seed,
		"target", cfg.Target)

	return r
}

func (r *Round) logRejected(a Applied) {
	if !a.Accepted() {
		r.logger.Debug("command rejected", "cmd", a.Command)
	}
}

// Config returns the effective configuration with defaults filled in.
func (r *Round) Config() RoundConfig { return r.cfg }

// State returns the current snapshot.
func (r *Round) State() *tetris.State { return r.state }

// StartedAt returns when the round began.
func (r *Round) StartedAt() time.Time { return r.startedAt }

// Done reports whether the round has finished.
func (r *Round) Done() bool { return r.outcome != nil }

// Outcome returns the final report; ok is false while the round is running.
func (r *Round) Outcome() (Outcome, bool) {
	if r.outcome == nil {
		return Outcome{}, false
	}
	return *r.outcome, true
}

// Elapsed returns the play time so far, frozen once the round is done.
func (r *Round) Elapsed() time.Duration {
	if r.outcome != nil {
		return r.outcome.EndedAt.Sub(r.startedAt)
	}
	return r.now().Sub(r.startedAt)
}

// Remaining returns the time left before the timer finishes the round.
func (r *Round) Remaining() time.Duration {
	return max(0, r.cfg.Target-r.Elapsed())
}

// Queue buffers cmd for the next Once. Commands queued after the round is
// done are dropped.
func (r *Round) Queue(cmd Command) {
	if r.outcome != nil {
		return
	}
	r.commands.Push(cmd)
}

// Once advances the round by dt seconds: it flushes queued commands, applies
// as many gravity steps as the accumulated time allows and checks whether
// the round has ended.
func (r *Round) Once(dt float64) {
	if r.outcome != nil {
		return
	}
	r.stats.frames++

	r.state = r.commands.Flush(r.state)
	if r.finishIfOver() {
		return
	}

	interval := r.cfg.Engine.GravityInterval.Seconds()
	r.gravityAcc += dt
	for r.gravityAcc >= interval {
		r.gravityAcc -= interval

		before := r.state
		r.state = r.state.StepGravity()
		r.stats.gravitySteps++
		r.stats.recordLock(before, r.state)

		if r.state.GameOver() {
			break
		}
	}

	r.finishIfOver()
}

// Stop finishes the round manually. It is a no-op once the round is done.
func (r *Round) Stop() {
	if r.outcome != nil {
		return
	}
	r.finish(FinishManual)
}

// Run drives the round at the given interval until it finishes or ctx is
// cancelled. Commands received on input are applied as they arrive; a closed
// input channel is ignored from then on.
func (r *Round) Run(ctx context.Context, interval time.Duration, input <-chan Command) (Outcome, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for r.outcome == nil {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case cmd, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			r.Queue(cmd)
			r.Once(0)
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			r.Once(dt)
		}
	}

	return *r.outcome, nil
}

// Stats returns a copy of the driving statistics collected so far.
func (r *Round) Stats() *RoundStats {
	return r.stats.snapshot()
}

func (r *Round) finishIfOver() bool {
	switch {
	case r.state.GameOver():
		r.finish(FinishGameOver)
	case r.now().Sub(r.startedAt) >= r.cfg.Target:
		r.finish(FinishTimer)
	default:
		return false
	}
	return true
}

func (r *Round) finish(reason FinishReason) {
	ended := r.now()
	elapsed := ended.Sub(r.startedAt)

	r.outcome = &Outcome{
		Reason:    reason,
		Result:    r.state.Result(elapsed, r.cfg.Target),
		StartedAt: r.startedAt,
		EndedAt:   ended,
	}

	if reason == FinishGameOver {
		r.logger.Info("game over", "elapsed", elapsed.Round(time.Second))
	}
	r.logger.Info("round finished",
		"reason", reason,
		"duration", r.outcome.Result.DurationSec,
		"lines", r.outcome.Result.LinesCleared,
		"pieces", r.outcome.Result.PiecesLocked)
}
