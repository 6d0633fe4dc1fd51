package session

import (
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/refocus/tetris"
)

// RoundStats summarises how a round has been driven so far.
type RoundStats struct {
	Frames        int64
	GravitySteps  int64
	Accepted      int64
	Rejected      int64
	TotalDuration time.Duration
	Commands      []CommandStats

	kindCounts *intmap.Map[tetris.Kind, int]
}

// CommandStats provides apply statistics for a single command.
type CommandStats struct {
	Command        Command
	ExecutionCount int64
	Rejected       int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// KindCounts returns how many pieces of each kind were locked, indexed like
// tetris.Kinds.
func (s *RoundStats) KindCounts() [len(tetris.Kinds)]int {
	var out [len(tetris.Kinds)]int
	for i, kind := range tetris.Kinds {
		if n, ok := s.kindCounts.Get(kind); ok {
			out[i] = n
		}
	}
	return out
}

// Executions sums ExecutionCount over every command.
func (s *RoundStats) Executions() int64 {
	var total int64
	for _, c := range s.Commands {
		total += c.ExecutionCount
	}
	return total
}

type commandStatsInternal struct {
	executionCount int64
	rejected       int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// statsRecorder is the mutable side of RoundStats, owned by one Round.
type statsRecorder struct {
	frames       int64
	gravitySteps int64
	commands     [commandCount]commandStatsInternal
	kinds        *intmap.Map[tetris.Kind, int]
}

func newStatsRecorder() *statsRecorder {
	r := &statsRecorder{
		kinds: intmap.New[tetris.Kind, int](len(tetris.Kinds)),
	}
	for i := range r.commands {
		r.commands[i].minDuration = time.Duration(1<<63 - 1)
	}
	return r
}

func (r *statsRecorder) recordApplied(a Applied) {
	if int(a.Command) >= len(r.commands) {
		return
	}

	stats := &r.commands[a.Command]
	stats.executionCount++
	stats.lastDuration = a.Took
	stats.totalDuration += a.Took

	if a.Took < stats.minDuration {
		stats.minDuration = a.Took
	}
	if a.Took > stats.maxDuration {
		stats.maxDuration = a.Took
	}
	if !a.Accepted() {
		stats.rejected++
	}

	r.recordLock(a.Before, a.After)
}

// recordLock attributes a lock to the kind that was falling before the
// transition.
func (r *statsRecorder) recordLock(before, after *tetris.State) {
	if after.Stats().PiecesLocked <= before.Stats().PiecesLocked {
		return
	}

	kind := before.Active().Kind
	n, _ := r.kinds.Get(kind)
	r.kinds.Put(kind, n+1)
}

func (r *statsRecorder) snapshot() *RoundStats {
	stats := &RoundStats{
		Frames:       r.frames,
		GravitySteps: r.gravitySteps,
		Commands:     make([]CommandStats, 0, len(r.commands)),
		kindCounts:   intmap.New[tetris.Kind, int](len(tetris.Kinds)),
	}

	for i, internal := range r.commands {
		minDuration := internal.minDuration
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Commands = append(stats.Commands, CommandStats{
			Command:        Command(i),
			ExecutionCount: internal.executionCount,
			Rejected:       internal.rejected,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})

		stats.Accepted += internal.executionCount - internal.rejected
		stats.Rejected += internal.rejected
		stats.TotalDuration += internal.totalDuration
	}

	for _, kind := range tetris.Kinds {
		if n, ok := r.kinds.Get(kind); ok {
			stats.kindCounts.Put(kind, n)
		}
	}

	return stats
}
