package circuit

import (
	"fmt"
	"strings"
)

// GateType names a primitive operation.
type GateType string

const (
	GateX       GateType = "X"
	GateH       GateType = "H"
	GateCX      GateType = "CX"
	GateCCX     GateType = "CCX"
	GateBarrier GateType = "BARRIER"
)

// controlArity is the number of control qubits each primitive expects.
var controlArity = map[GateType]int{
	GateX:   0,
	GateH:   0,
	GateCX:  1,
	GateCCX: 2,
}

// Gate is a single operation on the register.
//
// Single-qubit gates use Target only. CX and CCX carry their control qubits
// in Controls. A barrier has no target (-1) and fences the qubits in Span.
type Gate struct {
	Type     GateType
	Target   int
	Controls []int
	Span     []int
}

// X returns a NOT gate on q.
func X(q int) Gate {
	return Gate{Type: GateX, Target: q}
}

// H returns a Hadamard gate on q.
func H(q int) Gate {
	return Gate{Type: GateH, Target: q}
}

// CX returns a CNOT with the given control and target.
func CX(control, target int) Gate {
	return Gate{Type: GateCX, Target: target, Controls: []int{control}}
}

// CCX returns a Toffoli gate flipping target iff both controls are 1.
func CCX(control1, control2, target int) Gate {
	return Gate{Type: GateCCX, Target: target, Controls: []int{control1, control2}}
}

// Barrier returns a stage fence over the given qubits.
func Barrier(qubits ...int) Gate {
	return Gate{Type: GateBarrier, Target: -1, Span: append([]int(nil), qubits...)}
}

// IsBarrier reports whether the gate is a barrier.
func (g Gate) IsBarrier() bool {
	return g.Type == GateBarrier
}

// Qubits returns every qubit index the gate references, controls first.
func (g Gate) Qubits() []int {
	if g.IsBarrier() {
		return append([]int(nil), g.Span...)
	}
	qs := make([]int, 0, len(g.Controls)+1)
	qs = append(qs, g.Controls...)
	return append(qs, g.Target)
}

// References reports whether the gate touches qubit q.
func (g Gate) References(q int) bool {
	for _, r := range g.Qubits() {
		if r == q {
			return true
		}
	}
	return false
}

// remap returns a copy of g with every index i replaced by m[i].
func (g Gate) remap(m []int) Gate {
	out := Gate{Type: g.Type, Target: g.Target}
	if !g.IsBarrier() {
		out.Target = m[g.Target]
	}
	if len(g.Controls) > 0 {
		out.Controls = make([]int, len(g.Controls))
		for i, c := range g.Controls {
			out.Controls[i] = m[c]
		}
	}
	if len(g.Span) > 0 {
		out.Span = make([]int, len(g.Span))
		for i, q := range g.Span {
			out.Span[i] = m[q]
		}
	}
	return out
}

// clone returns a deep copy so callers never share index slices.
func (g Gate) clone() Gate {
	out := g
	out.Controls = append([]int(nil), g.Controls...)
	out.Span = append([]int(nil), g.Span...)
	return out
}

// Equal reports whether two gates are the same operation on the same qubits.
func (g Gate) Equal(o Gate) bool {
	if g.Type != o.Type || g.Target != o.Target {
		return false
	}
	return intsEqual(g.Controls, o.Controls) && intsEqual(g.Span, o.Span)
}

func (g Gate) String() string {
	qs := make([]string, 0, len(g.Qubits()))
	for _, q := range g.Qubits() {
		qs = append(qs, fmt.Sprintf("q[%d]", q))
	}
	return fmt.Sprintf("%s %s", g.Type, strings.Join(qs, ", "))
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
