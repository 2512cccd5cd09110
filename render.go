package main

import (
	"fmt"
	"slices"
	"strings"

	"qgrover/circuit"
	"qgrover/sim"
	"qgrover/synth"
)

// ──────────────────────────── Grid layout ────────────────────────────

// cellInfo describes what a single (step, qubit) cell shows.
type cellInfo struct {
	gate        *circuit.Gate
	isControl   bool
	isTarget    bool
	isBarrier   bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

type cellKey struct{ step, qubit int }

// grid is the scheduled drawing of a circuit. layout is nil unless the
// circuit came from a ladder builder.
type grid struct {
	numQubits int
	steps     int
	cells     map[cellKey]cellInfo
	layout    *synth.Layout
}

// layoutGrid places every gate of c in the column chosen by the scheduler
// and marks the wires each multi-qubit gate crosses.
func layoutGrid(c *circuit.Circuit, layout *synth.Layout) grid {
	g := grid{numQubits: c.NumQubits(), cells: make(map[cellKey]cellInfo), layout: layout}
	for _, node := range c.Schedule() {
		g.steps = max(g.steps, node.Step+1)
		gate := node.Gate
		qubits := gate.Qubits()
		lo, hi := slices.Min(qubits), slices.Max(qubits)

		for q := lo; q <= hi; q++ {
			info := cellInfo{vertAbove: q > lo, vertBelow: q < hi}
			switch {
			case gate.IsBarrier():
				info = cellInfo{gate: &gate, isBarrier: true}
			case slices.Contains(gate.Controls, q):
				info.gate, info.isControl = &gate, true
			case q == gate.Target:
				info.gate, info.isTarget = &gate, len(gate.Controls) > 0
			default:
				info.passThrough = true
			}
			g.cells[cellKey{node.Step, q}] = info
		}
	}
	return g
}

func (g grid) cell(step, qubit int) cellInfo {
	return g.cells[cellKey{step, qubit}]
}

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// qubitLabel names a wire after its role when the circuit has a ladder layout,
// and by index otherwise.
func qubitLabel(layout *synth.Layout, q int) string {
	if layout == nil {
		return fmt.Sprintf("q[%d]", q)
	}
	switch layout.Role(q) {
	case synth.RoleControl:
		return controlLabelStyle.Render(fmt.Sprintf("%-6s", fmt.Sprintf("c%d", q)))
	case synth.RoleAncilla:
		return ancillaLabelStyle.Render(fmt.Sprintf("%-6s", fmt.Sprintf("a%d", q-layout.NumControls())))
	default:
		return targetLabelStyle.Render(fmt.Sprintf("%-6s", "t"))
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	wire := func(center string) string {
		return strings.Repeat("─", dashL) + center + strings.Repeat("─", dashR)
	}
	vert := func(on bool) string {
		if on {
			return vertRow
		}
		return emptyRow
	}

	switch {
	case info.isBarrier:
		top = barrierStyle.Render(vertRow)
		mid = wire(barrierStyle.Render("┃"))
		bot = barrierStyle.Render(vertRow)

	case info.isControl:
		top, mid, bot = vert(info.vertAbove), wire(gateStyle.Render("●")), vert(info.vertBelow)

	case info.isTarget:
		top, mid, bot = vert(info.vertAbove), wire(gateStyle.Render("⊕")), vert(info.vertBelow)

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(string(info.gate.Type), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top, mid, bot = vertRow, wire("┼"), vertRow

	default:
		top, mid, bot = emptyRow, strings.Repeat("─", cellW), emptyRow
	}

	if hl == hlCursor {
		mid = cursorBoxStyle.Render("▸") + trimFirstRune(mid)
	}
	return
}

// trimFirstRune drops the first visible rune of a rendered line, keeping any
// escape sequence that precedes it.
func trimFirstRune(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\x1b' {
			for i < len(runes) && !isEscEnd(runes[i]) {
				i++
			}
			continue
		}
		return string(runes[:i]) + string(runes[i+1:])
	}
	return s
}

func isEscEnd(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// renderDiagram draws steps [start, start+count) of the circuit. cursor is the
// highlighted step, or -1.
func renderDiagram(g grid, start, count, cursor int) string {
	var sb strings.Builder
	end := min(start+count, g.steps)

	header := strings.Repeat(" ", labelVisualW)
	for step := start; step < end; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < g.numQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabel(g.layout, qubit)
		midLine += strings.Repeat("─", max(labelVisualW-visibleLen(midLine), 1))
		botLine := strings.Repeat(" ", labelVisualW)

		for step := start; step < end; step++ {
			hl := hlNone
			if step == cursor && qubit == 0 {
				hl = hlCursor
			}
			top, mid, bot := renderCell(g.cell(step, qubit), hl)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}
	return sb.String()
}

// renderStats summarizes gate counts and depth on one line.
func renderStats(c *circuit.Circuit) string {
	counts := c.Counts()
	parts := []string{fmt.Sprintf("qubits %d", c.NumQubits())}
	for _, t := range []circuit.GateType{circuit.GateX, circuit.GateH, circuit.GateCX, circuit.GateCCX} {
		if counts[t] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(string(t)), counts[t]))
		}
	}
	parts = append(parts, fmt.Sprintf("depth %d", c.Depth()))
	return strings.Join(parts, "  ")
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title()))
	if m.builder.Usage != "" {
		sb.WriteString("  " + dimStyle.Render(m.builder.Usage))
	}
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, min(startStep+maxSteps, m.grid.steps)-1)
	}

	sb.WriteString(renderDiagram(m.grid, startStep, maxSteps, m.cursorStep))

	fmt.Fprintf(&sb, "\n  %s", renderStats(m.circuit))
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", errorStyle.Render(m.errMsg))
	}

	if m.hist != nil {
		sb.WriteString("\n\n")
		sb.WriteString(renderHistogram(m.hist, 8, max(width-labelVisualW-24, 10)))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderHistogram draws the most frequent outcomes as horizontal bars.
func renderHistogram(h sim.Histogram, limit, barW int) string {
	var sb strings.Builder
	total := h.Total()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Samples (%d shots)", total)))
	sb.WriteString("\n")
	for i, o := range h.Sorted() {
		if i == limit {
			fmt.Fprintf(&sb, "  %s\n", dimStyle.Render(fmt.Sprintf("… %d more", len(h)-limit)))
			break
		}
		n := 0
		if total > 0 {
			n = o.Count * barW / total
		}
		fmt.Fprintf(&sb, "  %s %s %d\n", o.Label, barStyle.Render(strings.Repeat("█", max(n, 1))), o.Count)
	}
	return sb.String()
}

// renderQASMPanel renders the read-only QASM listing.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "OpenQASM"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmView.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Move step  Home/End Jump  Tab Switch focus")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Pick circuit\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("e Edit args  r Sample  ^S Save QASM  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)
	var prefix, suffix strings.Builder

	col, i := 0, 0
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				i++
				if isEscEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}
	for ; col < x; col++ {
		prefix.WriteRune(' ')
	}

	for skipped := 0; i < len(runes) && skipped < ovWidth; {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if isEscEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	for ; i < len(runes); i++ {
		suffix.WriteRune(runes[i])
	}
	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscEnd(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
