package protocol

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/plus3/refocus/quiz"
	"github.com/plus3/refocus/session"
)

// Version tags every saved record.
const Version = "v1"

const (
	DefaultReactivationSec = 30
	DefaultTetrisTargetMin = 20
	RotationQuestions      = 3

	maxRating     = 10
	maxFlashbacks = 20
)

// ReactivationChoices are the allowed reactivation lengths in seconds.
var ReactivationChoices = []int{20, 30, 40}

var (
	ErrInvalidTransition = errors.New("invalid protocol transition")
	ErrNoActiveDraft     = errors.New("no active session")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrSessionNotFound   = errors.New("session not found")
)

// Status is the step a session is in.
type Status string

const (
	StatusIdle         Status = "IDLE"
	StatusIntro        Status = "INTRO"
	StatusReactivation Status = "REACTIVATION"
	StatusRotationTask Status = "ROTATION_TASK"
	StatusTetrisPlay   Status = "TETRIS_PLAY"
	StatusCheckout     Status = "CHECKOUT"
	StatusCompleted    Status = "COMPLETED"
	StatusCancelled    Status = "CANCELLED"
)

// InProgress reports whether s belongs to a running session.
func (s Status) InProgress() bool {
	switch s {
	case StatusIntro, StatusReactivation, StatusRotationTask, StatusTetrisPlay, StatusCheckout:
		return true
	}
	return false
}

// CancelReason says why a session was abandoned.
type CancelReason string

const (
	CancelUser    CancelReason = "user"
	CancelTimeout CancelReason = "timeout"
	CancelError   CancelReason = "error"
)

// Settings are the user-adjustable protocol parameters.
type Settings struct {
	ReactivationSec int    `json:"reactivationSec" mapstructure:"reactivation_sec"`
	TetrisTargetMin int    `json:"tetrisTargetMin" mapstructure:"tetris_target_min"`
	EmergencyNote   string `json:"emergencyNote" mapstructure:"emergency_note"`
}

// DefaultSettings returns a 30 second reactivation and a 20 minute round.
func DefaultSettings() Settings {
	return Settings{
		ReactivationSec: DefaultReactivationSec,
		TetrisTargetMin: DefaultTetrisTargetMin,
	}
}

// Validate checks the reactivation length and the round target.
func (s Settings) Validate() error {
	if !slices.Contains(ReactivationChoices, s.ReactivationSec) {
		return fmt.Errorf("%w: reactivation must be one of %v seconds, got %d",
			ErrInvalidSettings, ReactivationChoices, s.ReactivationSec)
	}
	if s.TetrisTargetMin <= 0 {
		return fmt.Errorf("%w: round target must be positive, got %d minutes",
			ErrInvalidSettings, s.TetrisTargetMin)
	}
	return nil
}

// TetrisStats summarises the puzzle round of one session.
type TetrisStats struct {
	StartedAt         time.Time `json:"startedAt"`
	EndedAt           time.Time `json:"endedAt"`
	DurationSec       int       `json:"durationSec"`
	LinesCleared      int       `json:"linesCleared"`
	RotationsUsed     int       `json:"rotationsUsed"`
	FitsAfterRotation int       `json:"fitsAfterRotation"`
	PiecesLocked      int       `json:"piecesLocked"`
}

// StatsFromOutcome converts a finished round into session stats.
func StatsFromOutcome(out session.Outcome) TetrisStats {
	return TetrisStats{
		StartedAt:         out.StartedAt,
		EndedAt:           out.EndedAt,
		DurationSec:       out.Result.DurationSec,
		LinesCleared:      out.Result.LinesCleared,
		RotationsUsed:     out.Result.RotationsUsed,
		FitsAfterRotation: out.Result.FitsAfterRotation,
		PiecesLocked:      out.Result.PiecesLocked,
	}
}

// Draft is the in-progress state of one session.
type Draft struct {
	ID                string
	CreatedAt         time.Time
	ReactivationSec   int
	RotationQuestions int
	TetrisTargetSec   int
	Questions         []quiz.Question
	RotationAnswers   []quiz.AnswerRecord
	RotationCorrect   int
	Tetris            *TetrisStats
}

// TetrisTarget returns the planned round length.
func (d Draft) TetrisTarget() time.Duration {
	return time.Duration(d.TetrisTargetSec) * time.Second
}

// Reactivation returns the reactivation countdown length.
func (d Draft) Reactivation() time.Duration {
	return time.Duration(d.ReactivationSec) * time.Second
}

func (d Draft) clone() Draft {
	out := d
	out.Questions = slices.Clone(d.Questions)
	out.RotationAnswers = slices.Clone(d.RotationAnswers)
	if d.Tetris != nil {
		stats := *d.Tetris
		out.Tetris = &stats
	}
	return out
}

// CheckInput is the self-report collected at checkout. Ratings are rounded
// and clamped to 0..10, flashbacks to 0..20.
type CheckInput struct {
	Mood       float64
	Vividness  float64
	Flashbacks *float64
}

// RotationSummary is the quiz part of a record.
type RotationSummary struct {
	Answers      []quiz.AnswerRecord `json:"answers"`
	CorrectCount int                 `json:"correctCount"`
}

// Record is one completed session.
type Record struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"createdAt"`
	ProtocolVersion   string          `json:"protocolVersion"`
	ReactivationSec   int             `json:"reactivationSec"`
	RotationQuestions int             `json:"rotationQuestions"`
	TetrisTargetSec   int             `json:"tetrisTargetSec"`
	Mood              int             `json:"mood0to10"`
	Vividness         int             `json:"vividness0to10"`
	FlashbackCount    *int            `json:"flashbackCount,omitempty"`
	Rotation          RotationSummary `json:"rotation"`
	Tetris            TetrisStats     `json:"tetris"`
}
