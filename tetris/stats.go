package tetris

import "time"

// Stats are the per-engine counters. They only ever grow.
type Stats struct {
	LinesCleared  int
	RotationsUsed int
	PiecesLocked  int
	// FitsAfterRotation counts locks that immediately followed a rotation
	// of the same piece.
	FitsAfterRotation int
}

// Result is the summary a finished round hands to the session flow.
type Result struct {
	DurationSec       int `json:"durationSec"`
	LinesCleared      int `json:"linesCleared"`
	RotationsUsed     int `json:"rotationsUsed"`
	FitsAfterRotation int `json:"fitsAfterRotation"`
	PiecesLocked      int `json:"piecesLocked"`
}

// Result summarises the snapshot. The duration is whole elapsed seconds,
// clamped to [1, target]; a non-positive target disables the upper clamp.
func (s *State) Result(elapsed, target time.Duration) Result {
	sec := int(elapsed / time.Second)
	if target > 0 {
		sec = min(sec, int(target/time.Second))
	}
	sec = max(sec, 1)

	return Result{
		DurationSec:       sec,
		LinesCleared:      s.stats.LinesCleared,
		RotationsUsed:     s.stats.RotationsUsed,
		FitsAfterRotation: s.stats.FitsAfterRotation,
		PiecesLocked:      s.stats.PiecesLocked,
	}
}
