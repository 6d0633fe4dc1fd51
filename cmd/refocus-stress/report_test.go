package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/refocus/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStressReport(t *testing.T) {
	o := options{
		rounds:   2,
		seed:     3,
		target:   10 * time.Second,
		interval: 100 * time.Millisecond,
		rows:     20,
		cols:     10,
	}

	report := runStress(o, log.New(io.Discard))

	require.Len(t, report.Outcomes, 2)
	assert.Positive(t, report.TotalTicks)
	assert.Len(t, report.TickTime.Samples, int(report.TotalTicks))

	totals := report.Totals()
	assert.Positive(t, totals.PiecesLocked)

	locked := 0
	for _, k := range report.Kinds() {
		locked += k.Count
	}
	assert.Equal(t, totals.PiecesLocked, locked)

	reasons := 0
	for _, r := range report.Reasons() {
		reasons += r.Count
	}
	assert.Equal(t, 2, reasons)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# Refocus Stress Report")
	assert.Contains(t, buf.String(), "- **Rounds:** 2")
	assert.Contains(t, buf.String(), "Locked Pieces by Kind")
}

func TestReasonsSkipsMissing(t *testing.T) {
	r := newReport()
	r.Outcomes = []session.Outcome{
		{Reason: session.FinishGameOver},
		{Reason: session.FinishTimer},
		{Reason: session.FinishGameOver},
	}

	assert.Equal(t, []ReasonCount{
		{Reason: session.FinishTimer, Count: 1},
		{Reason: session.FinishGameOver, Count: 2},
	}, r.Reasons())
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}
