package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgrover/circuit"
	"qgrover/sim"
	"qgrover/synth"
)

func ladderGrid(t *testing.T, n int) grid {
	t.Helper()
	c, err := synth.LadderMCX(n)
	require.NoError(t, err)
	layout, err := synth.NewLayout(n)
	require.NoError(t, err)
	return layoutGrid(c, &layout)
}

func TestLayoutGridLadder(t *testing.T) {
	g := ladderGrid(t, 2)
	assert.Equal(t, 4, g.numQubits)
	assert.Equal(t, 3, g.steps)

	// ccx q[0], q[1], q[2]
	assert.True(t, g.cell(0, 0).isControl)
	assert.True(t, g.cell(0, 0).vertBelow)
	assert.False(t, g.cell(0, 0).vertAbove)
	assert.True(t, g.cell(0, 1).isControl)
	assert.True(t, g.cell(0, 2).isTarget)
	assert.True(t, g.cell(0, 2).vertAbove)
	assert.Nil(t, g.cell(0, 3).gate)

	// cx q[2], q[3]
	assert.True(t, g.cell(1, 2).isControl)
	assert.True(t, g.cell(1, 3).isTarget)
	assert.Nil(t, g.cell(1, 0).gate)

	assert.True(t, g.cell(2, 2).isTarget)
}

func TestLayoutGridPassThroughAndBarrier(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.ApplyAll(circuit.CX(0, 2), circuit.Barrier(0, 2), circuit.H(1)))

	g := layoutGrid(c, nil)
	assert.Equal(t, 3, g.steps)
	assert.True(t, g.cell(0, 1).passThrough)
	assert.Nil(t, g.cell(0, 1).gate)
	for q := 0; q < 3; q++ {
		assert.True(t, g.cell(1, q).isBarrier, "qubit %d", q)
	}

	h := g.cell(2, 1)
	require.NotNil(t, h.gate)
	assert.Equal(t, circuit.GateH, h.gate.Type)
	assert.False(t, h.isTarget, "single-qubit gates draw as a box")
}

func TestRenderDiagram(t *testing.T) {
	g := ladderGrid(t, 2)

	out := renderDiagram(g, 0, g.steps, -1)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 1+3*4)
	for _, label := range []string{"c0", "c1", "a0", "t"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "⊕")

	width := visibleLen(lines[2])
	for i := 1; i < len(lines); i++ {
		assert.Equal(t, width, visibleLen(lines[i]), "line %d", i)
	}
}

func TestRenderDiagramWindow(t *testing.T) {
	g := ladderGrid(t, 4)

	out := renderDiagram(g, 2, 2, 3)
	header := strings.Split(out, "\n")[0]
	assert.Equal(t, labelVisualW+2*cellW, visibleLen(header))
	assert.Contains(t, out, "▸")
}

func TestRenderDiagramPlainLabels(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.Apply(circuit.X(1)))

	out := renderDiagram(layoutGrid(c, nil), 0, 1, -1)
	assert.Contains(t, out, "q[2]")
	assert.Contains(t, out, "X")
}

func TestRenderDiagramEvenRegisterWithoutLayout(t *testing.T) {
	c, err := synth.LadderMCX(2)
	require.NoError(t, err)

	out := renderDiagram(layoutGrid(c, nil), 0, 1, -1)
	for _, label := range []string{"q[0]", "q[1]", "q[2]", "q[3]"} {
		assert.Contains(t, out, label)
	}
	assert.NotContains(t, out, "c0")
	assert.NotContains(t, out, "a0")
}

func TestRenderStats(t *testing.T) {
	c, err := synth.LadderMCX(4)
	require.NoError(t, err)

	stats := renderStats(c)
	assert.Contains(t, stats, "qubits 8")
	assert.Contains(t, stats, "ccx 6")
	assert.Contains(t, stats, "cx 1")
	assert.Contains(t, stats, "depth 7")
}

func TestRenderHistogram(t *testing.T) {
	h := sim.Histogram{"00": 3, "11": 5, "01": 1}
	out := renderHistogram(h, 2, 10)
	assert.Contains(t, out, "9 shots")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "00")
	assert.Contains(t, out, "1 more")
}

func TestOverlayAt(t *testing.T) {
	assert.Equal(t, "aaaa\nbXYb", overlayAt("aaaa\nbbbb", "XY", 1, 1))
	assert.Equal(t, "aaaa", overlayAt("aaaa", "XY", 0, 5), "rows outside the background are dropped")
	assert.Equal(t, "ab  Z", spliceLineAt("ab", "Z", 4))
}

func TestSpliceLineAtSkipsEscapes(t *testing.T) {
	bg := "\x1b[31mabcd\x1b[0m"
	assert.Equal(t, "\x1b[31mabZd\x1b[0m", spliceLineAt(bg, "Z", 2))
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 1, visibleLen("\x1b[1mX\x1b[0m"))
	assert.Equal(t, 3, visibleLen("─●─"))
	assert.Equal(t, 0, visibleLen(""))
}

func TestTrimFirstRune(t *testing.T) {
	assert.Equal(t, "\x1b[1m─", trimFirstRune("\x1b[1m──"))
	assert.Equal(t, "bc", trimFirstRune("abc"))
	assert.Equal(t, "", trimFirstRune(""))
}

func TestPadCenter(t *testing.T) {
	assert.Equal(t, " X ", padCenter("X", 3))
	assert.Equal(t, "CC", padCenter("CCX", 2))
}
