// Package protocol walks one wellness session through its fixed steps:
// intro, memory reactivation, rotation quiz, puzzle round and checkout.
// Every step is gated on the current status so an out-of-order call can
// never corrupt a session.
package protocol

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/refocus/quiz"
)

// Option customises a Flow.
type Option func(*Flow)

// WithLogger sets the logger used for step transitions.
func WithLogger(logger *log.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithIDGenerator replaces the random session id source.
func WithIDGenerator(newID func() string) Option {
	return func(f *Flow) {
		f.newID = newID
	}
}

// Flow is the session state machine. It keeps completed records in memory,
// newest first. A Flow is not safe for concurrent use.
type Flow struct {
	settings   Settings
	status     Status
	draft      *Draft
	records    []Record
	lastCancel CancelReason

	newID  func() string
	logger *log.Logger
}

// NewFlow returns an idle flow using settings.
func NewFlow(settings Settings, opts ...Option) (*Flow, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	f := &Flow{
		settings: settings,
		status:   StatusIdle,
		newID:    uuid.NewString,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Flow) Status() Status     { return f.status }
func (f *Flow) Settings() Settings { return f.settings }

// LastCancel returns why the most recent session was cancelled, if it was.
func (f *Flow) LastCancel() CancelReason { return f.lastCancel }

// Draft returns a copy of the active draft.
func (f *Flow) Draft() (Draft, bool) {
	if f.draft == nil {
		return Draft{}, false
	}
	return f.draft.clone(), true
}

// Records returns the completed sessions, newest first.
func (f *Flow) Records() []Record {
	return slices.Clone(f.records)
}

func (f *Flow) transition(op string, from Status) error {
	if f.status != from || f.draft == nil {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, f.status)
	}
	return nil
}

func (f *Flow) moveTo(next Status) {
	f.logger.Debug("session step", "from", f.status, "to", next)
	f.status = next
}

// Start opens a new draft. It fails while another session is in progress.
func (f *Flow) Start(now time.Time) error {
	if f.status.InProgress() {
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, f.status)
	}

	f.draft = &Draft{
		ID:                f.newID(),
		CreatedAt:         now,
		ReactivationSec:   f.settings.ReactivationSec,
		RotationQuestions: RotationQuestions,
		TetrisTargetSec:   f.settings.TetrisTargetMin * 60,
		Questions:         quiz.Questions(RotationQuestions),
	}
	f.lastCancel = ""

	f.logger.Info("session started", "id", f.draft.ID)
	f.moveTo(StatusIntro)
	return nil
}

// AcceptTerms moves from the intro to reactivation.
func (f *Flow) AcceptTerms() error {
	if err := f.transition("accept terms", StatusIntro); err != nil {
		return err
	}
	f.moveTo(StatusReactivation)
	return nil
}

// FinishReactivation moves on to the rotation quiz.
func (f *Flow) FinishReactivation() error {
	if err := f.transition("finish reactivation", StatusReactivation); err != nil {
		return err
	}
	f.moveTo(StatusRotationTask)
	return nil
}

// SetRotationResult stores the quiz answers and starts the puzzle step.
// A negative correct count is stored as zero.
func (f *Flow) SetRotationResult(answers []quiz.AnswerRecord, correct int) error {
	if err := f.transition("set rotation result", StatusRotationTask); err != nil {
		return err
	}

	f.draft.RotationAnswers = slices.Clone(answers)
	f.draft.RotationCorrect = max(0, correct)
	f.moveTo(StatusTetrisPlay)
	return nil
}

// SetTetrisStats stores the round summary and opens checkout.
func (f *Flow) SetTetrisStats(stats TetrisStats) error {
	if err := f.transition("set tetris stats", StatusTetrisPlay); err != nil {
		return err
	}

	f.draft.Tetris = &stats
	f.moveTo(StatusCheckout)
	return nil
}

// SaveCheck completes the session with the checkout self-report and returns
// the stored record.
func (f *Flow) SaveCheck(in CheckInput) (Record, error) {
	if err := f.transition("save check", StatusCheckout); err != nil {
		return Record{}, err
	}

	d := f.draft
	rec := Record{
		ID:                d.ID,
		CreatedAt:         d.CreatedAt,
		ProtocolVersion:   Version,
		ReactivationSec:   d.ReactivationSec,
		RotationQuestions: d.RotationQuestions,
		TetrisTargetSec:   d.TetrisTargetSec,
		Mood:              clampRound(in.Mood, maxRating),
		Vividness:         clampRound(in.Vividness, maxRating),
		Rotation: RotationSummary{
			Answers:      slices.Clone(d.RotationAnswers),
			CorrectCount: d.RotationCorrect,
		},
		Tetris: *d.Tetris,
	}
	if in.Flashbacks != nil {
		n := clampRound(*in.Flashbacks, maxFlashbacks)
		rec.FlashbackCount = &n
	}

	f.records = slices.Insert(f.records, 0, rec)
	f.draft = nil
	f.logger.Info("session completed", "id", rec.ID, "mood", rec.Mood, "vividness", rec.Vividness)
	f.moveTo(StatusCompleted)
	return rec, nil
}

// Cancel abandons the active session. Nothing is recorded.
func (f *Flow) Cancel(reason CancelReason) error {
	if f.draft == nil {
		return ErrNoActiveDraft
	}
	if reason == "" {
		reason = CancelUser
	}

	f.logger.Info("session cancelled", "id", f.draft.ID, "reason", reason, "step", f.status)
	f.draft = nil
	f.lastCancel = reason
	f.moveTo(StatusCancelled)
	return nil
}

// Discard drops any draft and returns to idle.
func (f *Flow) Discard() {
	f.draft = nil
	f.moveTo(StatusIdle)
}

// UpdateReactivationSec changes the reactivation length used by the next
// session.
func (f *Flow) UpdateReactivationSec(sec int) error {
	next := f.settings
	next.ReactivationSec = sec
	if err := next.Validate(); err != nil {
		return err
	}
	f.settings = next
	return nil
}

// UpdateEmergencyNote replaces the note shown on the intro step.
func (f *Flow) UpdateEmergencyNote(note string) {
	f.settings.EmergencyNote = note
}

// DeleteRecord removes a completed session by id.
func (f *Flow) DeleteRecord(id string) error {
	i := slices.IndexFunc(f.records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	f.records = slices.Delete(f.records, i, i+1)
	return nil
}

// ClearAll resets settings and history and returns to idle.
func (f *Flow) ClearAll() {
	f.settings = DefaultSettings()
	f.records = nil
	f.Discard()
}

func clampRound(v float64, hi int) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(max(0, min(float64(hi), math.Round(v))))
}
