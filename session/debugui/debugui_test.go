package debugui_test

import (
	"testing"

	"github.com/plus3/refocus/session/debugui"
	"github.com/plus3/refocus/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameHistoryAverage(t *testing.T) {
	h := debugui.NewFrameHistory(4)
	assert.Equal(t, float32(0), h.Average())

	h.Push(0.010)
	h.Push(0.020)
	assert.InDelta(t, 15.0, h.Average(), 0.001)

	for range 4 {
		h.Push(0.005)
	}
	assert.InDelta(t, 5.0, h.Average(), 0.001)
}

func TestFrameHistoryOrdered(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	for _, dt := range []float32{0.001, 0.002, 0.003, 0.004} {
		h.Push(dt)
	}

	got := h.Ordered()
	require.Len(t, got, 3)
	assert.InDelta(t, 2.0, got[0], 0.001)
	assert.InDelta(t, 3.0, got[1], 0.001)
	assert.InDelta(t, 4.0, got[2], 0.001)
}

func TestOverlayItems(t *testing.T) {
	o := debugui.NewOverlay(debugui.Item{Name: "a", Render: func() {}})
	o.Add(debugui.Item{Name: "b", Render: func() {}})

	assert.Equal(t, []string{"a", "b"}, o.Items())
	assert.True(t, o.Visible())
	o.Toggle()
	assert.False(t, o.Visible())
}

func TestStateFields(t *testing.T) {
	s := tetris.New(tetris.Config{Seed: 3}).Hold()

	fields := map[string]string{}
	for _, f := range debugui.StateFields(s) {
		fields[f.Name] = f.Value
	}

	held, ok := s.HoldKind()
	require.True(t, ok)
	assert.Equal(t, held.String(), fields["Hold"])
	assert.Equal(t, "false", fields["Can hold"])
	assert.Equal(t, "false", fields["Game over"])
	assert.Equal(t, "0", fields["Locked"])
	assert.Len(t, fields["Next"], 2*len(s.Next(tetris.Lookahead))-1)
}
