package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

type Report struct {
	// Configuration
	Rounds   int
	Seed     uint64
	Target   time.Duration
	Interval time.Duration
	Rows     int
	Cols     int

	// Results
	Outcomes       []session.Outcome
	TotalTime      time.Duration
	TotalTicks     int64
	TickTime       Stats
	Commands       int64
	Rejected       int64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	kinds *intmap.Map[tetris.Kind, int]
}

func newReport() *Report {
	return &Report{kinds: intmap.New[tetris.Kind, int](len(tetris.Kinds))}
}

// AddRound folds one finished round into the report.
func (r *Report) AddRound(out session.Outcome, stats *session.RoundStats) {
	r.Outcomes = append(r.Outcomes, out)
	r.Commands += stats.Accepted + stats.Rejected
	r.Rejected += stats.Rejected

	for i, n := range stats.KindCounts() {
		kind := tetris.Kinds[i]
		prev, _ := r.kinds.Get(kind)
		r.kinds.Put(kind, prev+n)
	}
}

type ReasonCount struct {
	Reason session.FinishReason
	Count  int
}

func (r *Report) Reasons() []ReasonCount {
	order := []session.FinishReason{session.FinishTimer, session.FinishGameOver, session.FinishManual}
	out := make([]ReasonCount, 0, len(order))
	for _, reason := range order {
		n := 0
		for _, o := range r.Outcomes {
			if o.Reason == reason {
				n++
			}
		}
		if n > 0 {
			out = append(out, ReasonCount{Reason: reason, Count: n})
		}
	}
	return out
}

func (r *Report) Totals() tetris.Result {
	var total tetris.Result
	for _, o := range r.Outcomes {
		total.DurationSec += o.Result.DurationSec
		total.LinesCleared += o.Result.LinesCleared
		total.RotationsUsed += o.Result.RotationsUsed
		total.FitsAfterRotation += o.Result.FitsAfterRotation
		total.PiecesLocked += o.Result.PiecesLocked
	}
	return total
}

type KindCount struct {
	Kind  tetris.Kind
	Count int
}

func (r *Report) Kinds() []KindCount {
	out := make([]KindCount, 0, len(tetris.Kinds))
	for _, kind := range tetris.Kinds {
		n, _ := r.kinds.Get(kind)
		out = append(out, KindCount{Kind: kind, Count: n})
	}
	return out
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Refocus Stress Report

## Configuration
- **Rounds:** {{.Rounds}}
- **Base Seed:** {{.Seed}}
- **Board:** {{.Rows}}x{{.Cols}}
- **Simulated Round Length:** {{.Target}}
- **Simulated Tick:** {{.Interval}}

## Outcomes
{{range .Reasons}}- **{{.Reason}}:** {{.Count}}
{{end}}
## Totals
{{with .Totals}}- **Played:** {{.DurationSec}}s
- **Pieces Locked:** {{.PiecesLocked}}
- **Lines Cleared:** {{.LinesCleared}}
- **Rotations Used:** {{.RotationsUsed}}
- **Fits After Rotation:** {{.FitsAfterRotation}}
{{end}}
## Locked Pieces by Kind
{{range .Kinds}}- {{.Kind}}: {{.Count}}
{{end}}
## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Commands Applied:** {{.Commands}} ({{.Rejected}} rejected)
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
